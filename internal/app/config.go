package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apigrpc "keycalc/internal/api/grpc"
	apihttp "keycalc/internal/api/http"
	"keycalc/internal/infrastructure/click"
	"keycalc/internal/infrastructure/kafka"
	"keycalc/internal/infrastructure/mongo"
	"keycalc/internal/infrastructure/pg"
	"keycalc/internal/infrastructure/redis"
	"keycalc/internal/pkg/logger"
)

const AppName = "CALCULATOR"

// envFileVar: путь к .env; по умолчанию .env в рабочей директории.
const envFileVar = AppName + "_ENV_FILE"

// Хранилища истории.
const (
	StoragePG    = "pg"
	StorageMongo = "mongo"
)

// SessionsConfig: сессии клавиатуры. Переменные: CALCULATOR_SESSIONS_MAX, _IDLE_TTL, _SWEEP_INTERVAL.
// IdleTTL == 0 отключает вытеснение простаивающих сессий.
type SessionsConfig struct {
	Max           int           `envconfig:"MAX" default:"10000"`
	IdleTTL       time.Duration `envconfig:"IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
}

// Config: конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR.
type Config struct {
	Log        logger.Config        `envconfig:"LOG"`
	Storage    string               `envconfig:"STORAGE" default:"pg"`
	Server     apihttp.ServerConfig `envconfig:"SERVER"`
	Grpc       apigrpc.Config       `envconfig:"GRPC"`
	DB         pg.Config            `envconfig:"DB"`
	Mongo      mongo.Config         `envconfig:"MONGO"`
	Redis      redis.Config         `envconfig:"REDIS"`
	Kafka      kafka.Config         `envconfig:"KAFKA"`
	ClickHouse click.Config         `envconfig:"CLICKHOUSE"`
	Sessions   SessionsConfig       `envconfig:"SESSIONS"`
}

// Validate проверяет значения, которые envconfig не может проверить сам.
func (c Config) Validate() error {
	switch c.Storage {
	case StoragePG, StorageMongo:
	default:
		return fmt.Errorf("config: unknown storage %q (want %s or %s)", c.Storage, StoragePG, StorageMongo)
	}
	if c.Sessions.IdleTTL > 0 && c.Sessions.SweepInterval <= 0 {
		return fmt.Errorf("config: sessions sweep interval must be positive, got %s", c.Sessions.SweepInterval)
	}
	return nil
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
// Отсутствие .env не ошибка: переменные могут прийти из окружения.
func LoadCfg() (Config, error) {
	envFile := os.Getenv(envFileVar)
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Info("config: .env not loaded, using environment", "path", envFile, "error", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
