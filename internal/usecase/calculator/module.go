package calculator

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"keycalc/internal/ports"
)

var (
	_ ports.ICalculatorUseCase = (*UseCase)(nil)
	_ ports.IKeypadUseCase     = (*UseCase)(nil)
)

// DefaultMaxSessions: лимит одновременно открытых сессий по умолчанию.
const DefaultMaxSessions = 10000

// cacheKey формирует читаемый ключ операции для кэша, например "1 + 1".
func cacheKey(number1, number2 float64, operation string) string {
	return strconv.FormatFloat(number1, 'f', -1, 64) + " " + operation + " " + strconv.FormatFloat(number2, 'f', -1, 64)
}

// UseCase содержит бизнес-логику калькулятора, то есть разовые вычисления и сессии клавиатуры.
// cache, broker и analytics могут быть nil: тогда соответствующий шаг пропускается.
type UseCase struct {
	repo      ports.IOperationRepository
	cache     ports.ICache
	broker    ports.IProducer
	analytics ports.IOperationAnalytics
	log       *slog.Logger

	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// Option: дополнительная настройка юзкейса.
type Option func(*UseCase)

// WithMaxSessions ограничивает число открытых сессий. n <= 0: без ограничения.
func WithMaxSessions(n int) Option {
	return func(u *UseCase) { u.maxSessions = n }
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(u *UseCase) { u.now = now }
}

// New создаёт юзкейс калькулятора.
func New(repo ports.IOperationRepository, cache ports.ICache, broker ports.IProducer, analytics ports.IOperationAnalytics, log *slog.Logger, opts ...Option) *UseCase {
	if log == nil {
		log = slog.Default()
	}
	u := &UseCase{
		repo:        repo,
		cache:       cache,
		broker:      broker,
		analytics:   analytics,
		log:         log,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
