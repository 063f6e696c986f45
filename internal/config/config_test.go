package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "DB_MAX_OPEN_CONNS", "AUTH_ENABLED", "IMAGE_STORAGE", "IDEMPOTENCY_TTL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 1, cfg.DBMaxOpenConns)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, ImageStorageDB, cfg.ImageStorage)
	assert.Equal(t, 10*time.Minute, cfg.IdempotencyTTL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("IMAGE_STORAGE", "S3")
	t.Setenv("IDEMPOTENCY_TTL", "30s")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, 4, cfg.DBMaxOpenConns)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, ImageStorageS3, cfg.ImageStorage)
	assert.Equal(t, 30*time.Second, cfg.IdempotencyTTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("AUTH_ENABLED", "perhaps")
	t.Setenv("IDEMPOTENCY_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 1, cfg.DBMaxOpenConns)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, 10*time.Minute, cfg.IdempotencyTTL)
}
