package calculator

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"keycalc/internal/domain"
	"keycalc/internal/keypad"
)

// session: одна сессия клавиатуры. Автомат однопоточный, поэтому все нажатия идут под mu.
type session struct {
	id       string
	mu       sync.Mutex
	machine  *keypad.Machine
	lastSeen time.Time

	// заполняются колбэками автомата во время одного вызова press
	alerts      []string
	evaluations []domain.Operation
}

func newSession(id string, now time.Time) *session {
	s := &session{id: id, lastSeen: now}
	s.machine = keypad.New(
		keypad.WithAlerter(keypad.AlertFunc(func(msg string) {
			s.alerts = append(s.alerts, msg)
		})),
		keypad.WithRecorder(keypad.RecordFunc(func(op domain.Operation) {
			op.SessionID = s.id
			s.evaluations = append(s.evaluations, op)
		})),
	)
	return s
}

// press применяет клавиши по порядку и возвращает вид после последней.
func (s *session) press(keys []domain.Key, now time.Time) *domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts, s.evaluations = nil, nil
	for _, k := range keys {
		s.machine.Press(k)
	}
	for i := range s.evaluations {
		s.evaluations[i].Timestamp = now
	}
	s.lastSeen = now

	return &domain.SessionView{
		SessionID:   s.id,
		State:       s.machine.State(),
		Alerts:      slices.Clone(s.alerts),
		Evaluations: slices.Clone(s.evaluations),
	}
}

func (s *session) view() *domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &domain.SessionView{SessionID: s.id, State: s.machine.State()}
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// OpenSession создаёт сессию с автоматом в начальном состоянии.
func (u *UseCase) OpenSession(ctx context.Context) (*domain.SessionView, error) {
	_ = ctx
	id := uuid.Must(uuid.NewV7()).String()

	u.mu.Lock()
	if u.maxSessions > 0 && len(u.sessions) >= u.maxSessions {
		u.mu.Unlock()
		return nil, fmt.Errorf("%w: limit %d", domain.ErrTooManySessions, u.maxSessions)
	}
	s := newSession(id, u.now())
	u.sessions[id] = s
	sessionsActive.Set(float64(len(u.sessions)))
	u.mu.Unlock()

	u.log.Debug("session opened", "session_id", id)
	return s.view(), nil
}

// Press разбирает строку клавиш и применяет её к автомату сессии.
// Строка проверяется целиком до применения: при неизвестной клавише состояние не меняется.
// Ошибки сохранения вычислений логируются и не прерывают ввод.
func (u *UseCase) Press(ctx context.Context, sessionID, keys string) (*domain.SessionView, error) {
	parsed, err := domain.ParseKeys(keys)
	if err != nil {
		return nil, err
	}
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	view := s.press(parsed, u.now())

	for _, k := range parsed {
		keysTotal.WithLabelValues(k.String()).Inc()
	}
	if len(view.Alerts) > 0 {
		divisionByZeroTotal.Add(float64(len(view.Alerts)))
		u.log.Warn("keypad alert", "session_id", sessionID, "alerts", view.Alerts)
	}
	for _, op := range view.Evaluations {
		evaluationsTotal.WithLabelValues(op.Operation).Inc()
		if err := u.persist(ctx, op); err != nil {
			u.log.Warn("keypad evaluation not persisted", "session_id", sessionID, "error", err)
		}
	}

	return view, nil
}

// Session возвращает текущее состояние сессии.
func (u *UseCase) Session(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	_ = ctx
	s, err := u.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(), nil
}

// CloseSession удаляет сессию.
func (u *UseCase) CloseSession(ctx context.Context, sessionID string) error {
	_ = ctx
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	delete(u.sessions, sessionID)
	sessionsActive.Set(float64(len(u.sessions)))
	u.log.Debug("session closed", "session_id", sessionID)
	return nil
}

// EvictIdle закрывает сессии, к которым не обращались дольше ttl. Возвращает число закрытых.
func (u *UseCase) EvictIdle(now time.Time, ttl time.Duration) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	evicted := 0
	for id, s := range u.sessions {
		if now.Sub(s.idleSince()) > ttl {
			delete(u.sessions, id)
			evicted++
		}
	}
	sessionsActive.Set(float64(len(u.sessions)))
	if evicted > 0 {
		u.log.Info("idle sessions evicted", "count", evicted, "active", len(u.sessions))
	}
	return evicted
}

// RunJanitor раз в interval вытесняет сессии старше ttl. Блокируется до отмены ctx.
func (u *UseCase) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.EvictIdle(u.now(), ttl)
		}
	}
}

func (u *UseCase) lookup(sessionID string) (*session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return s, nil
}
