package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DB_DSN", "postgres://localhost/rental")
	t.Setenv("ENV", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("WATCH_INTERVAL", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 2*time.Minute, cfg.WatchInterval)
	assert.Equal(t, "America/El_Salvador", cfg.Timezone)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DB_DSN", "postgres://localhost/rental")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("API_RETRIES", "5")
	t.Setenv("USER_RATE_LIMIT", "0.5")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 5, cfg.APIRetries)
	assert.Equal(t, 0.5, cfg.UserRateLimit)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DB_DSN", "postgres://localhost/rental")
	t.Setenv("API_TIMEOUT", "soon")
	t.Setenv("USER_RATE_BURST", "many")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 5, cfg.UserRateBurst)
}

func TestFromEnv_Required(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("DB_DSN", "postgres://localhost/rental")

	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DB_DSN", "")

	_, err = FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_NonPositiveDurations(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"WATCH_INTERVAL", "0s"},
		{"WATCH_INTERVAL", "-1m"},
		{"API_TIMEOUT", "0s"},
		{"INFLIGHT_TTL", "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("TELEGRAM_TOKEN", "token")
			t.Setenv("DB_DSN", "postgres://localhost/rental")
			t.Setenv("WATCH_INTERVAL", "")
			t.Setenv("API_TIMEOUT", "")
			t.Setenv("INFLIGHT_TTL", "")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestFromEnv_UnknownTimezone(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DB_DSN", "postgres://localhost/rental")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := FromEnv()
	assert.Error(t, err)
}
