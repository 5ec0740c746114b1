package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	apigrpc "keycalc/internal/api/grpc"
	apihttp "keycalc/internal/api/http"
	"keycalc/internal/api/http/controllers/calculator"
	"keycalc/internal/api/http/controllers/keypad"
	"keycalc/internal/api/http/controllers/system"
	"keycalc/internal/infrastructure/click"
	"keycalc/internal/infrastructure/kafka"
	"keycalc/internal/infrastructure/mongo"
	"keycalc/internal/infrastructure/pg"
	"keycalc/internal/infrastructure/redis"
	"keycalc/internal/pkg/logger"
	"keycalc/internal/ports"
	calcUsecase "keycalc/internal/usecase/calculator"
)

// App: приложение, хранит только конфиг.
type App struct {
	cfg Config
}

// New создаёт приложение с конфигом (хранилища подключаются в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// closer: то, что нужно закрыть при остановке.
type closer func() error

// Run подключает хранилища, собирает зависимости и запускает HTTP и gRPC (блокирующий вызов до SIGINT/SIGTERM).
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New(a.cfg.Log)
	slog.SetDefault(log)

	var closers []closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("close failed", "error", err)
			}
		}
	}()

	repo, closeRepo, err := a.openRepository(ctx, log)
	if err != nil {
		return err
	}
	closers = append(closers, closeRepo)

	rdb, err := redis.New(ctx, &a.cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	closers = append(closers, rdb.Close)
	cache := redis.NewCache(rdb, a.cfg.Redis.TTL, log)

	var analytics ports.IOperationAnalytics
	if a.cfg.ClickHouse.Enabled {
		ch, err := click.New(ctx, &a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		closers = append(closers, ch.Close)
		writer := click.NewOperationWriter(ch)
		if err := writer.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse table: %w", err)
		}
		analytics = writer
	}

	var broker ports.IProducer
	if a.cfg.Kafka.Enabled {
		producer := kafka.NewProducer(&a.cfg.Kafka)
		closers = append(closers, producer.Close)
		broker = producer
	}

	uc := calcUsecase.New(repo, cache, broker, analytics, log,
		calcUsecase.WithMaxSessions(a.cfg.Sessions.Max))

	// консьюмер нужен только для записи в аналитику
	if a.cfg.Kafka.Enabled && analytics != nil {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, uc, log)
		closers = append(closers, consumer.Close)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("kafka consumer failed", "error", err)
			}
		}()
	}

	if a.cfg.Sessions.IdleTTL > 0 {
		go uc.RunJanitor(ctx, a.cfg.Sessions.SweepInterval, a.cfg.Sessions.IdleTTL)
	}

	grpcAddr := a.cfg.Grpc.Addr()
	grpcSrv := apigrpc.NewServer(grpcAddr, uc, uc, log)
	go func() {
		if err := grpcSrv.Start(); err != nil {
			log.Error("grpc server failed", "error", err)
			stop()
		}
	}()

	srv := apihttp.NewServer(a.cfg.Server)
	srv.AddController(
		system.New(repo, log),
		calculator.New(uc, log),
		keypad.New(uc, log),
	)

	log.Info("application started",
		"http", a.cfg.Server.Addr(),
		"grpc", grpcAddr,
		"storage", a.cfg.Storage,
		"kafka", a.cfg.Kafka.Enabled,
		"clickhouse", a.cfg.ClickHouse.Enabled,
	)

	httpErr := srv.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	grpcErr := grpcSrv.Stop(shutdownCtx)
	log.Info("application stopped")

	return errors.Join(httpErr, grpcErr)
}

// openRepository подключает хранилище истории по CALCULATOR_STORAGE.
func (a *App) openRepository(ctx context.Context, log *slog.Logger) (ports.IOperationRepository, closer, error) {
	switch a.cfg.Storage {
	case StorageMongo:
		client, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo: %w", err)
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return mongo.NewOperationRepo(client, log), client.Close, nil
	default:
		db, err := pg.New(ctx, &a.cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return pg.NewOperationRepo(db, log), db.Close, nil
	}
}
