package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://api.example.com")
		t.Setenv("APP_ENV", "test")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "20")
		t.Setenv("POLL_INTERVAL_SECONDS", "45")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 20*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 45*time.Second, cfg.PollInterval)
	})

	t.Run("Defaults applied for missing durations", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://api.example.com")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "")
		t.Setenv("POLL_INTERVAL_SECONDS", "nonsense")

		cfg := LoadConfig()

		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 30*time.Second, cfg.PollInterval)
	})
}
