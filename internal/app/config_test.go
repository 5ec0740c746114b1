package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCfg_Defaults(t *testing.T) {
	t.Setenv(envFileVar, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := LoadCfg()

	require.NoError(t, err)
	assert.Equal(t, StoragePG, cfg.Storage)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Grpc.Port)
	assert.Equal(t, "keycalc", cfg.DB.DBName)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 3, cfg.Kafka.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Kafka.RetryBackoff)
	assert.False(t, cfg.ClickHouse.Enabled)
	assert.Equal(t, 10000, cfg.Sessions.Max)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadCfg_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"CALCULATOR_STORAGE=mongo\nCALCULATOR_SESSIONS_MAX=5\nCALCULATOR_SESSIONS_IDLE_TTL=90s\nCALCULATOR_LOG_LEVEL=debug\n",
	), 0o600))
	t.Setenv(envFileVar, path)
	// godotenv не перезаписывает уже заданные переменные, а t.Setenv вернёт их после теста
	for _, k := range []string{"CALCULATOR_STORAGE", "CALCULATOR_SESSIONS_MAX", "CALCULATOR_SESSIONS_IDLE_TTL", "CALCULATOR_LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := LoadCfg()

	require.NoError(t, err)
	assert.Equal(t, StorageMongo, cfg.Storage)
	assert.Equal(t, 5, cfg.Sessions.Max)
	assert.Equal(t, 90*time.Second, cfg.Sessions.IdleTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadCfg_UnknownStorage(t *testing.T) {
	t.Setenv(envFileVar, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CALCULATOR_STORAGE", "sqlite")

	_, err := LoadCfg()

	assert.ErrorContains(t, err, "unknown storage")
}
