package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"keycalc/internal/domain"
	"keycalc/internal/mocks"
)

// fakeReader отдаёт заранее заданные сообщения, затем io.EOF.
type fakeReader struct {
	msgs      []kafka.Message
	committed []kafka.Message
}

func (f *fakeReader) FetchMessage(context.Context) (kafka.Message, error) {
	if len(f.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) Close() error { return nil }

func newTestConsumer(t *testing.T, r messageReader, attempts int) (*Consumer, *mocks.MockICalculatorUseCase) {
	t.Helper()
	h := mocks.NewMockICalculatorUseCase(gomock.NewController(t))
	return &Consumer{
		r:           r,
		handler:     h,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxAttempts: attempts,
		backoff:     time.Millisecond,
	}, h
}

func operationMessage(t *testing.T, offset int64, op domain.Operation) kafka.Message {
	t.Helper()
	value, err := json.Marshal(op)
	require.NoError(t, err)
	return kafka.Message{Topic: "keycalc.operations", Offset: offset, Value: value}
}

func TestDecodeOperation(t *testing.T) {
	op := domain.Operation{
		SessionID: "0192f0a0-0000-7000-8000-000000000000",
		Number1:   3,
		Number2:   4,
		Operation: "+",
		Result:    7,
		Timestamp: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	}
	value, err := json.Marshal(op)
	require.NoError(t, err)

	got, err := decodeOperation(value)

	require.NoError(t, err)
	assert.Equal(t, op, got)
}

func TestDecodeOperation_Infinity(t *testing.T) {
	got, err := decodeOperation([]byte(`{"number1":1e308,"number2":10,"operation":"*","result":"Infinity","timestamp":"2026-10-14T12:00:00Z"}`))

	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Result, 1))
	assert.Equal(t, 1e308, got.Number1)
}

// Обработчик падает дважды, третья попытка успешна: сообщение коммитится один раз.
func TestConsumerRun_RetriesThenCommits(t *testing.T) {
	op := domain.Operation{Number1: 2, Number2: 3, Operation: "*", Result: 6}
	r := &fakeReader{msgs: []kafka.Message{operationMessage(t, 10, op)}}
	c, h := newTestConsumer(t, r, 3)

	gomock.InOrder(
		h.EXPECT().HandleOperationEvent(gomock.Any(), gomock.Any()).Return(errors.New("clickhouse down")),
		h.EXPECT().HandleOperationEvent(gomock.Any(), gomock.Any()).Return(errors.New("clickhouse down")),
		h.EXPECT().HandleOperationEvent(gomock.Any(), gomock.Any()).Return(nil),
	)

	err := c.Run(context.Background())

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, r.committed, 1)
	assert.Equal(t, int64(10), r.committed[0].Offset)
}

// Попытки исчерпаны: сообщение коммитится и пропускается, следующее обрабатывается.
func TestConsumerRun_SkipsAfterMaxAttempts(t *testing.T) {
	r := &fakeReader{msgs: []kafka.Message{
		operationMessage(t, 1, domain.Operation{Operation: "+", Result: 1}),
		operationMessage(t, 2, domain.Operation{Operation: "+", Result: 2}),
	}}
	c, h := newTestConsumer(t, r, 2)

	gomock.InOrder(
		h.EXPECT().HandleOperationEvent(gomock.Any(), gomock.Any()).Return(errors.New("boom")).Times(2),
		h.EXPECT().HandleOperationEvent(gomock.Any(), gomock.Any()).Return(nil),
	)

	err := c.Run(context.Background())

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, r.committed, 2)
	assert.Equal(t, int64(1), r.committed[0].Offset)
	assert.Equal(t, int64(2), r.committed[1].Offset)
}

func TestConsumerRun_BrokenMessageCommitted(t *testing.T) {
	r := &fakeReader{msgs: []kafka.Message{{Offset: 5, Value: []byte("{not json")}}}
	c, _ := newTestConsumer(t, r, 3)

	err := c.Run(context.Background())

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, r.committed, 1)
}

// Отмена во время паузы прерывает повторы без коммита.
func TestConsumerHandle_CancelDuringBackoff(t *testing.T) {
	c, h := newTestConsumer(t, &fakeReader{}, 5)
	c.backoff = time.Hour
	ctx, cancel := context.WithCancel(context.Background())

	h.EXPECT().HandleOperationEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.Operation) error {
			cancel()
			return errors.New("boom")
		})

	err := c.handle(ctx, domain.Operation{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeOperation_Broken(t *testing.T) {
	_, err := decodeOperation([]byte("{not json"))
	assert.Error(t, err)
}

func TestBrokersSlice(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want []string
	}{
		{name: "nil", cfg: nil, want: []string{"localhost:9092"}},
		{name: "пусто", cfg: &Config{}, want: []string{"localhost:9092"}},
		{name: "один", cfg: &Config{Brokers: "kafka:9092"}, want: []string{"kafka:9092"}},
		{name: "с пробелами", cfg: &Config{Brokers: "a:9092, b:9092 ,"}, want: []string{"a:9092", "b:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.brokersSlice())
		})
	}
}
