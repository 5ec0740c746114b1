package keypad

import "keycalc/internal/domain"

// PressRequest: клавиши для POST /api/v1/sessions/:id/keys, например "7+3=".
// Предел длины совпадает с domain.MaxKeySequence.
type PressRequest struct {
	Keys string `json:"keys" binding:"required,max=4096"`
}

// SessionResponse описывает сессию плоско: дисплей, отложенная операция, уведомления и вычисления последнего ввода.
type SessionResponse struct {
	SessionID   string             `json:"session_id"`
	Display     string             `json:"display"`
	Pending     string             `json:"pending"`
	Operator    string             `json:"operator"`
	Reset       bool               `json:"reset"`
	Alerts      []string           `json:"alerts"`
	Evaluations []domain.Operation `json:"evaluations"`
}

// ErrorResponse: ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toResponse(v *domain.SessionView) SessionResponse {
	resp := SessionResponse{
		SessionID:   v.SessionID,
		Display:     v.State.Current,
		Pending:     v.State.Pending,
		Operator:    v.State.Operator.String(),
		Reset:       v.State.ResetOnNextInput,
		Alerts:      v.Alerts,
		Evaluations: v.Evaluations,
	}
	if resp.Alerts == nil {
		resp.Alerts = []string{}
	}
	if resp.Evaluations == nil {
		resp.Evaluations = []domain.Operation{}
	}
	return resp
}
