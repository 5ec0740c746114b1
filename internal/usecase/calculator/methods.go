package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"keycalc/internal/domain"
)

// Calculate: проверяет кэш; при промахе считает, сохраняет в БД и в кэш, публикует в брокер.
func (u *UseCase) Calculate(ctx context.Context, number1, number2 float64, operation string) (*domain.Operation, error) {
	operator, err := domain.ParseOperator(operation)
	if err != nil {
		return nil, err
	}

	key := cacheKey(number1, number2, operator.String())
	if u.cache != nil {
		if cached, found, err := u.cache.Get(ctx, key); err == nil && found {
			return &domain.Operation{
				Number1:   number1,
				Number2:   number2,
				Operation: operator.String(),
				Result:    cached,
				Timestamp: u.now(),
			}, nil
		}
	}

	result, err := operator.Apply(number1, number2)
	if err != nil {
		if errors.Is(err, domain.ErrDivisionByZero) {
			divisionByZeroTotal.Inc()
		}
		return nil, err
	}

	op := domain.Operation{
		Number1:   number1,
		Number2:   number2,
		Operation: operator.String(),
		Result:    result,
		Timestamp: u.now(),
	}
	if err := u.persist(ctx, op); err != nil {
		return nil, err
	}
	evaluationsTotal.WithLabelValues(op.Operation).Inc()

	return &op, nil
}

// persist сохраняет вычисление в БД и кэш и публикует его в брокер. Ошибка брокера только логируется.
func (u *UseCase) persist(ctx context.Context, op domain.Operation) error {
	key := cacheKey(op.Number1, op.Number2, op.Operation)

	if err := u.repo.SaveOperation(ctx, op); err != nil {
		return fmt.Errorf("save operation: %w", err)
	}
	u.log.Info("operation saved", "key", key, "result", op.Result, "session_id", op.SessionID)

	if u.cache != nil {
		if err := u.cache.Set(ctx, key, op.Result); err != nil {
			return fmt.Errorf("cache set: %w", err)
		}
	}

	if u.broker == nil {
		return nil
	}
	value, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("marshal operation: %w", err)
	}
	if err := u.broker.Send(ctx, []byte(key), value); err != nil {
		u.log.Warn("broker send", "key", key, "error", err)
	} else {
		u.log.Info("operation published", "key", key, "result", op.Result)
	}
	return nil
}

// History: история операций (обвязка над репозиторием).
func (u *UseCase) History(ctx context.Context) ([]domain.Operation, error) {
	return u.repo.GetHistory(ctx)
}

// HandleOperationEvent вызывается консьюмером при получении сообщения из топика операций.
func (u *UseCase) HandleOperationEvent(ctx context.Context, op domain.Operation) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WriteOperation(ctx, op); err != nil {
		u.log.Warn("analytics write", "error", err)
		return err
	}
	u.log.Info("operation stored to click", "number1", op.Number1, "operation", op.Operation, "number2", op.Number2, "result", op.Result, "session_id", op.SessionID)

	return nil
}
