package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"

	"keycalc/internal/domain"
)

var messagesSkipped = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "keycalc_kafka_messages_skipped_total",
		Help: "Operation events committed without successful handling",
	},
	[]string{"reason"},
)

// OperationHandler: кто обрабатывает операции из топика (use case калькулятора).
type OperationHandler interface {
	HandleOperationEvent(ctx context.Context, op domain.Operation) error
}

// messageReader: часть kafka.Reader, которой пользуется Consumer.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer: обёртка над kafka.Reader, декодирует сообщения в domain.Operation и передаёт обработчику.
type Consumer struct {
	r           messageReader
	handler     OperationHandler
	log         *slog.Logger
	maxAttempts int
	backoff     time.Duration
}

// NewConsumer создаёт консьюмера по конфигу, обработчику и логгеру. После использования вызови Close().
func NewConsumer(cfg *Config, handler OperationHandler, log *slog.Logger) *Consumer {
	c := New(cfg).Consumer()
	c.handler = handler
	c.log = log
	return c
}

// Run в цикле читает сообщения, декодирует JSON в domain.Operation, вызывает обработчик и коммитит.
// Ошибку обработчика повторяет до maxAttempts раз с удвоением паузы; исчерпав попытки,
// коммитит сообщение и пропускает его. Битые сообщения пропускаются сразу.
// Выход по отмене ctx или при ошибке чтения.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		op, err := decodeOperation(msg.Value)
		if err != nil {
			c.log.Warn("kafka unmarshal error, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			messagesSkipped.WithLabelValues("decode").Inc()
		} else if err := c.handle(ctx, op); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka handle failed, message skipped",
				"error", err, "attempts", c.attempts(), "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			messagesSkipped.WithLabelValues("handler").Inc()
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// handle вызывает обработчик с повторами. Возвращает последнюю ошибку или ctx.Err() при отмене во время паузы.
func (c *Consumer) handle(ctx context.Context, op domain.Operation) error {
	wait := c.backoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = c.handler.HandleOperationEvent(ctx, op); err == nil {
			return nil
		}
		if attempt >= c.attempts() {
			return err
		}
		c.log.Warn("kafka handle error, retrying", "error", err, "attempt", attempt, "backoff", wait)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}

func (c *Consumer) attempts() int {
	if c.maxAttempts < 1 {
		return 1
	}
	return c.maxAttempts
}

// decodeOperation разбирает тело сообщения, которое публикует use case.
func decodeOperation(value []byte) (domain.Operation, error) {
	var op domain.Operation
	err := json.Unmarshal(value, &op)
	return op, err
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
