//go:build integration

package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keycalc/internal/pkg/testutil"
)

func setupCache(t *testing.T, ttl time.Duration) (*Cache, *Client) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()

	container, err := testutil.NewRedisContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	cli, err := New(ctx, &Config{Host: container.Host, Port: container.Port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })

	return NewCache(cli, ttl, slog.New(slog.NewTextHandler(io.Discard, nil))), cli
}

func TestCache_SetGet(t *testing.T) {
	cache, cli := setupCache(t, time.Hour)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "1 / 3")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "1 / 3", 1.0/3))

	v, found, err := cache.Get(ctx, "1 / 3")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1.0/3, v)

	ttl, err := cli.TTL(ctx, keyPrefix+"1 / 3").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestCache_BrokenValue(t *testing.T) {
	cache, cli := setupCache(t, 0)
	ctx := context.Background()

	require.NoError(t, cli.Set(ctx, keyPrefix+"2 + 2", "four", 0).Err())

	_, found, err := cache.Get(ctx, "2 + 2")
	assert.False(t, found)
	assert.ErrorContains(t, err, "cache parse value")
}
