package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config: настройки Kafka. Переменные: CALCULATOR_KAFKA_ENABLED, _BROKERS, _TOPIC, _GROUP_ID,
// _MAX_ATTEMPTS, _RETRY_BACKOFF.
type Config struct {
	Enabled      bool          `envconfig:"ENABLED" default:"false"`
	Brokers      string        `envconfig:"BROKERS" default:"localhost:9092"` // через запятую, если несколько
	Topic        string        `envconfig:"TOPIC" default:"keycalc.operations"`
	GroupID      string        `envconfig:"GROUP_ID" default:"keycalc-analytics"` // для consumer group
	MaxAttempts  int           `envconfig:"MAX_ATTEMPTS" default:"3"`              // попыток обработать одно сообщение
	RetryBackoff time.Duration `envconfig:"RETRY_BACKOFF" default:"200ms"`         // пауза перед повтором, растёт вдвое
}

// brokersSlice возвращает список брокеров из строки (через запятую).
func (c *Config) brokersSlice() []string {
	if c == nil || c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	parts := strings.Split(c.Brokers, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Client: конфиг и фабрики продюсера/консьюмера. Подключение к брокеру при создании Writer/Reader.
type Client struct {
	cfg *Config
}

// New создаёт клиент по конфигу. Само подключение к Kafka: при первой записи или чтении.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Client{cfg: cfg}
}

// Producer создаёт продюсера для отправки сообщений в топик. После использования вызови Close().
// Ключ сообщения: ключ операции, поэтому одинаковые операции попадают в одну партицию.
func (c *Client) Producer() *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(c.cfg.brokersSlice()...),
		Topic:        c.cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{w: w}
}

// Consumer создаёт консьюмера для чтения из топика (consumer group). После использования вызови Close().
func (c *Client) Consumer() *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.cfg.brokersSlice(),
		Topic:   c.cfg.Topic,
		GroupID: c.cfg.GroupID,
	})
	return &Consumer{r: r, maxAttempts: c.cfg.MaxAttempts, backoff: c.cfg.RetryBackoff}
}
