package calculator

import (
	"errors"
	"time"

	"keycalc/internal/domain"
)

// CalculateRequest: запрос на вычисление (для POST /api/v1/calculate).
// Числа заданы указателями, иначе required у gin отбросит допустимый операнд 0.
type CalculateRequest struct {
	Number1   *float64 `json:"number1" binding:"required"`
	Number2   *float64 `json:"number2" binding:"required"`
	Operation string   `json:"operation" binding:"required"`
}

// Validate проверяет, что операция известна (символ или алиас).
func (r CalculateRequest) Validate() error {
	if r.Number1 == nil || r.Number2 == nil {
		return errors.New("number1 and number2 are required")
	}
	if _, err := domain.ParseOperator(r.Operation); err != nil {
		return err
	}
	return nil
}

// CalculateResponse: ответ с результатом.
type CalculateResponse struct {
	Result  domain.JSONFloat `json:"result"`
	Message string           `json:"message,omitempty"`
}

// HistoryItem: одна запись в истории (для GET /api/v1/history).
type HistoryItem struct {
	ID        int              `json:"id"`
	SessionID string           `json:"session_id,omitempty"`
	Number1   domain.JSONFloat `json:"number1"`
	Number2   domain.JSONFloat `json:"number2"`
	Operation string           `json:"operation"`
	Result    domain.JSONFloat `json:"result"`
	Message   string           `json:"message,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// HistoryResponse: ответ со списком операций.
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

// ErrorResponse: ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toHistoryItems(list []domain.Operation) []HistoryItem {
	items := make([]HistoryItem, len(list))
	for i, op := range list {
		items[i] = HistoryItem{
			ID:        op.ID,
			SessionID: op.SessionID,
			Number1:   domain.JSONFloat(op.Number1),
			Number2:   domain.JSONFloat(op.Number2),
			Operation: op.Operation,
			Result:    domain.JSONFloat(op.Result),
			Message:   op.Message,
			Timestamp: op.Timestamp,
		}
	}
	return items
}
