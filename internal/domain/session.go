package domain

import "errors"

var (
	// ErrSessionNotFound: сессии с таким идентификатором нет (закрыта, вытеснена или не существовала).
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions: достигнут лимит открытых сессий.
	ErrTooManySessions = errors.New("too many sessions")
)

// SessionView: то, что видит клиент сессии после очередного ввода.
// Alerts и Evaluations относятся только к последнему вызову.
type SessionView struct {
	SessionID   string      `json:"session_id"`
	State       State       `json:"state"`
	Alerts      []string    `json:"alerts,omitempty"`
	Evaluations []Operation `json:"evaluations,omitempty"`
}
