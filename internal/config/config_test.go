package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMongo, cfg.Storage)
	assert.Equal(t, 0.70, cfg.PassThreshold)
	assert.Equal(t, 10*time.Minute, cfg.QuestionCacheTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URI", "redis://cache:6380")
	t.Setenv("QUESTION_CACHE_TTL", "30s")
	t.Setenv("STORAGE", "MEMORY")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.QuestionCacheTTL)
	assert.Equal(t, StorageMemory, cfg.Storage)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("PASS_THRESHOLD=0.8\nAPP_NAME=Academy\nPORT=7000\n"), 0o600))
	t.Setenv("PORT", "7001")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.PassThreshold)
	assert.Equal(t, "Academy", cfg.AppName)
	assert.Equal(t, "7001", cfg.Port, "environment wins over the dotenv file")
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("PASS_THRESHOLD", "1.5")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
