package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"keycalc/internal/ports"
)

var _ ports.ICache = (*Cache)(nil)

// keyPrefix отделяет ключи калькулятора от прочих ключей в той же базе.
const keyPrefix = "keycalc:result:"

// Cache реализует ports.ICache через Redis. Ключ это строка операции, значение это результат (float64 как строка).
type Cache struct {
	cli *Client
	ttl time.Duration
	log *slog.Logger
}

// NewCache возвращает кэш с временем жизни записей ttl (0: без срока).
func NewCache(cli *Client, ttl time.Duration, log *slog.Logger) *Cache {
	return &Cache{cli: cli, ttl: ttl, log: log}
}

// Get возвращает результат по ключу. Если ключа нет: found == false.
func (c *Cache) Get(ctx context.Context, key string) (value float64, found bool, err error) {
	s, err := c.cli.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		c.log.Debug("cache get failed", "key", key, "error", err)
		return 0, false, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.log.Debug("cache parse failed", "key", key, "error", err)
		return 0, false, fmt.Errorf("cache parse value: %w", err)
	}
	return v, true, nil
}

// Set сохраняет результат по ключу. Повторная запись перезаписывает значение и продлевает срок.
func (c *Cache) Set(ctx context.Context, key string, value float64) error {
	s := strconv.FormatFloat(value, 'g', -1, 64)
	if err := c.cli.Set(ctx, keyPrefix+key, s, c.ttl).Err(); err != nil {
		c.log.Debug("cache set failed", "key", key, "error", err)
		return err
	}
	return nil
}
