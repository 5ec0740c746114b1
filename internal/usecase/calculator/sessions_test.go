package calculator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"keycalc/internal/domain"
	"keycalc/internal/keypad"
	"keycalc/internal/mocks"
)

func TestOpenSession(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())

	view, err := uc.OpenSession(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, view.SessionID)
	assert.Equal(t, domain.State{Current: "0"}, view.State)
}

func TestOpenSession_Limit(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger(), WithMaxSessions(1))

	_, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	_, err = uc.OpenSession(context.Background())
	assert.ErrorIs(t, err, domain.ErrTooManySessions)
}

// Press: каждое вычисление сессии уходит в БД, кэш и брокер.
func TestPress_PersistsEvaluations(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := mocks.NewMockICache(ctrl)
	mockRepo := mocks.NewMockIOperationRepository(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	uc := New(mockRepo, mockCache, mockBroker, nil, newTestLogger(), WithClock(fixedClock))
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	gomock.InOrder(
		mockRepo.EXPECT().SaveOperation(gomock.Any(), domain.Operation{
			SessionID: opened.SessionID, Number1: 3, Number2: 4, Operation: "+", Result: 7, Timestamp: fixedNow,
		}).Return(nil),
		mockCache.EXPECT().Set(gomock.Any(), "3 + 4", 7.0).Return(nil),
		mockBroker.EXPECT().Send(gomock.Any(), []byte("3 + 4"), gomock.Any()).Return(nil),
		mockRepo.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).Return(nil),
		mockCache.EXPECT().Set(gomock.Any(), "7 * 2", 14.0).Return(nil),
		mockBroker.EXPECT().Send(gomock.Any(), []byte("7 * 2"), gomock.Any()).Return(nil),
	)

	view, err := uc.Press(context.Background(), opened.SessionID, "3+4*2=")

	require.NoError(t, err)
	assert.Equal(t, "14", view.State.Current)
	assert.Len(t, view.Evaluations, 2)
	assert.Empty(t, view.Alerts)
}

func TestPress_StateSurvivesBetweenCalls(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := mocks.NewMockIOperationRepository(ctrl)
	mockRepo.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).Return(nil)

	uc := New(mockRepo, nil, nil, nil, newTestLogger())
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	view, err := uc.Press(context.Background(), opened.SessionID, "C7+")
	require.NoError(t, err)
	assert.Equal(t, domain.State{Current: "7", Pending: "7", Operator: domain.OpAdd, ResetOnNextInput: true}, view.State)

	view, err = uc.Press(context.Background(), opened.SessionID, "3=")
	require.NoError(t, err)
	assert.Equal(t, "10", view.State.Current)
	require.Len(t, view.Evaluations, 1)

	view, err = uc.Session(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "10", view.State.Current)
	assert.Empty(t, view.Evaluations, "Session не повторяет вычисления прошлых вызовов")
}

func TestPress_DivisionByZero(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	view, err := uc.Press(context.Background(), opened.SessionID, "9/0=")

	require.NoError(t, err)
	assert.Equal(t, domain.State{Current: "0"}, view.State)
	assert.Equal(t, []string{domain.DivisionByZeroMessage}, view.Alerts)
	assert.Empty(t, view.Evaluations)
}

func TestPress_UnknownKeyIsAtomic(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	_, err = uc.Press(context.Background(), opened.SessionID, "12?")
	assert.ErrorIs(t, err, domain.ErrUnknownKey)

	view, err := uc.Session(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "0", view.State.Current, "ни одна клавиша не применена")
}

func TestPress_TooManyKeys(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	_, err = uc.Press(context.Background(), opened.SessionID, strings.Repeat("1", domain.MaxKeySequence+1))
	assert.ErrorIs(t, err, domain.ErrTooManyKeys)

	view, err := uc.Session(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "0", view.State.Current)
}

// Длинный ввод в пределах MaxKeySequence упирается в предел операнда.
func TestPress_LongOperandIsCapped(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	view, err := uc.Press(context.Background(), opened.SessionID, strings.Repeat("9", domain.MaxKeySequence))
	require.NoError(t, err)
	assert.Len(t, view.State.Current, keypad.MaxOperandLength)
}

func TestPress_SessionNotFound(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())

	_, err := uc.Press(context.Background(), "missing", "1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// Ошибка сохранения логируется, ввод не ломается.
func TestPress_PersistFailureDoesNotFail(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := mocks.NewMockIOperationRepository(ctrl)
	mockRepo.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	uc := New(mockRepo, nil, nil, nil, newTestLogger())
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	view, err := uc.Press(context.Background(), opened.SessionID, "5*=")

	require.NoError(t, err)
	assert.Equal(t, "25", view.State.Current)
}

func TestCloseSession(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	require.NoError(t, uc.CloseSession(context.Background(), opened.SessionID))

	_, err = uc.Session(context.Background(), opened.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, uc.CloseSession(context.Background(), opened.SessionID), domain.ErrSessionNotFound)
}

func TestEvictIdle(t *testing.T) {
	now := fixedNow
	uc := New(nil, nil, nil, nil, newTestLogger(), WithClock(func() time.Time { return now }))

	stale, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	fresh, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	evicted := uc.EvictIdle(now.Add(15*time.Minute), 30*time.Minute)

	assert.Equal(t, 1, evicted)
	_, err = uc.Session(context.Background(), stale.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = uc.Session(context.Background(), fresh.SessionID)
	assert.NoError(t, err)
}

func TestRunJanitor_StopsOnCancel(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		uc.RunJanitor(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

// Параллельные нажатия в одной сессии сериализуются: ни одно не теряется.
func TestPress_Concurrent(t *testing.T) {
	uc := New(nil, nil, nil, nil, newTestLogger())
	opened, err := uc.OpenSession(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Press(context.Background(), opened.SessionID, "1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := uc.Session(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Len(t, view.State.Current, 50)
}
