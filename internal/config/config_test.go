package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "mistral", cfg.LLM.Model)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 7, cfg.Cache.TTLDays)
	assert.Equal(t, 7*24*time.Hour, cfg.Cache.TTL())
	assert.Equal(t, time.Hour, cfg.Cache.SweepInterval)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CACHE_TTL_DAYS", "3")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3*24*time.Hour, cfg.Cache.TTL())
}

func TestLoadConfigFile(t *testing.T) {
	os.Clearenv()

	content := `
server:
  port: "7070"
llm:
  model: "llama3"
auth:
  jwt_secret: "a-long-enough-secret-value"
`
	f, err := os.CreateTemp("", "config_*.yaml")
	assert.NoError(t, err)
	defer os.Remove(f.Name())

	_, err = f.WriteString(content)
	assert.NoError(t, err)
	f.Close()

	t.Setenv("CONFIG_FILE", f.Name())

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, "a-long-enough-secret-value", cfg.Auth.JWTSecret)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	os.Clearenv()
	t.Setenv("AUTH_JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}
