package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"keycalc/internal/domain"
)

// ICalculatorUseCase: разовые вычисления, история и обработка событий из Kafka.
type ICalculatorUseCase interface {
	Calculate(ctx context.Context, number1, number2 float64, operation string) (*domain.Operation, error)
	History(ctx context.Context) ([]domain.Operation, error)
	HandleOperationEvent(ctx context.Context, op domain.Operation) error
}

// IKeypadUseCase управляет сессиями клавиатурного калькулятора, каждая сессия владеет своим автоматом.
type IKeypadUseCase interface {
	OpenSession(ctx context.Context) (*domain.SessionView, error)
	Press(ctx context.Context, sessionID, keys string) (*domain.SessionView, error)
	Session(ctx context.Context, sessionID string) (*domain.SessionView, error)
	CloseSession(ctx context.Context, sessionID string) error
}
