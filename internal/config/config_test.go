package config

import (
	"io"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	log.SetOutput(io.Discard)

	for _, key := range []string{
		"PORT", "FLEET_API_URL", "FLEET_API_TIMEOUT_SECONDS", "LOG_LEVEL",
		"REDIS_ENABLED", "FLASH_TTL_SECONDS", "CORS_ALLOW_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, log.InfoLevel, cfg.GetLogLevel())
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, time.Minute, cfg.FlashTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	log.SetOutput(io.Discard)

	t.Setenv("PORT", "9090")
	t.Setenv("FLEET_API_URL", "http://fleet.local/api/")
	t.Setenv("FLEET_API_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.local, http://b.local")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://fleet.local/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, log.DebugLevel, cfg.GetLogLevel())
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowOrigins)
}

func TestGetIntIgnoresInvalid(t *testing.T) {
	t.Setenv("FLASH_TTL_SECONDS", "-5")
	assert.Equal(t, 60, getInt("FLASH_TTL_SECONDS", 60))

	t.Setenv("FLASH_TTL_SECONDS", "abc")
	assert.Equal(t, 60, getInt("FLASH_TTL_SECONDS", 60))
}
