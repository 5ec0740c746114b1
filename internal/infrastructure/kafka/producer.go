package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"keycalc/internal/ports"
)

var _ ports.IProducer = (*Producer)(nil)

// Заголовки событий об операциях.
const (
	headerContentType = "content-type"
	headerEventType   = "event-type"

	contentTypeJSON    = "application/json"
	eventOperationDone = "keycalc.operation.completed"
)

// messageWriter: часть kafka.Writer, которой пользуется Producer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события выполненных операций в топик.
type Producer struct {
	w messageWriter
}

// NewProducer создаёт продюсера по конфигу. После использования вызови Close().
func NewProducer(cfg *Config) *Producer {
	return New(cfg).Producer()
}

// Send публикует событие операции: key это ключ кэша ("7 + 3"), value это JSON domain.Operation.
// Одинаковые операции по ключу попадают в одну партицию.
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	if len(value) == 0 {
		return fmt.Errorf("kafka write: empty operation payload for key %q", key)
	}
	if err := p.w.WriteMessages(ctx, newMessage(key, value)); err != nil {
		return fmt.Errorf("kafka write %q: %w", key, err)
	}
	return nil
}

func newMessage(key, value []byte) kafka.Message {
	return kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: headerContentType, Value: []byte(contentTypeJSON)},
			{Key: headerEventType, Value: []byte(eventOperationDone)},
		},
	}
}

// Close дожидается отправки буфера и закрывает продюсера.
func (p *Producer) Close() error {
	return p.w.Close()
}
