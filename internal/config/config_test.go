package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSecret(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN_FILE", filepath.Join(t.TempDir(), "missing"))
}

func TestLoad_DefaultValues(t *testing.T) {
	noSecret(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, "data/bot.db", cfg.DBPath)
	assert.Equal(t, 0, cfg.LogLevel)
	assert.False(t, cfg.TelegramDebug)
	assert.Equal(t, time.Minute, cfg.Reminder.Interval)
	assert.Equal(t, 24*time.Hour, cfg.Reminder.Lookahead)
	assert.Equal(t, 30*time.Minute, cfg.Deadlines.CandidateTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Deadlines.Window)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*testing.T, *Config)
	}{
		{
			name:    "log level override",
			envVars: map[string]string{"LOG_LEVEL": "-4"},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, -4, cfg.LogLevel)
			},
		},
		{
			name: "reminder override",
			envVars: map[string]string{
				"REMINDER_INTERVAL":  "30s",
				"REMINDER_LOOKAHEAD": "48h",
			},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30*time.Second, cfg.Reminder.Interval)
				assert.Equal(t, 48*time.Hour, cfg.Reminder.Lookahead)
			},
		},
		{
			name: "deadlines override",
			envVars: map[string]string{
				"DEADLINES_CANDIDATE_TTL": "5m",
				"DEADLINES_WINDOW":        "168h",
			},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5*time.Minute, cfg.Deadlines.CandidateTTL)
				assert.Equal(t, 7*24*time.Hour, cfg.Deadlines.Window)
			},
		},
		{
			name: "storage and debug override",
			envVars: map[string]string{
				"DB_PATH":        "/tmp/focus.db",
				"TELEGRAM_DEBUG": "true",
			},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/focus.db", cfg.DBPath)
				assert.True(t, cfg.TelegramDebug)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noSecret(t)
			t.Setenv("TELEGRAM_BOT_TOKEN", "token")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			tt.expected(t, cfg)
		})
	}
}

func TestLoad_SecretFileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  from-secret\n"), 0o600))
	t.Setenv("TELEGRAM_BOT_TOKEN_FILE", path)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.TelegramToken)
}

func TestLoad_NoToken(t *testing.T) {
	noSecret(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "   ")

	_, err := Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestLoad_InvalidDuration(t *testing.T) {
	noSecret(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("REMINDER_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
