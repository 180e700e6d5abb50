package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrNoToken is returned when neither the environment nor the Docker secret
// carries a bot token.
var ErrNoToken = errors.New("токен не найден: отсутствует и Docker Secret, и переменная окружения")

// Config contains bot configuration parameters.
type Config struct {
	TelegramToken string    `env:"TELEGRAM_BOT_TOKEN"`
	TokenFile     string    `env:"TELEGRAM_BOT_TOKEN_FILE" envDefault:"/run/secrets/telegram_bot_token"`
	TelegramDebug bool      `env:"TELEGRAM_DEBUG" envDefault:"false"`
	DBPath        string    `env:"DB_PATH" envDefault:"data/bot.db"`
	LogLevel      int       `env:"LOG_LEVEL" envDefault:"0"`
	Reminder      Reminder  `envPrefix:"REMINDER_"`
	Deadlines     Deadlines `envPrefix:"DEADLINES_"`
}

// Reminder contains deadline sweep parameters.
type Reminder struct {
	Interval  time.Duration `env:"INTERVAL" envDefault:"60s"`
	Lookahead time.Duration `env:"LOOKAHEAD" envDefault:"24h"`
}

// Deadlines contains deadline extraction and listing parameters.
type Deadlines struct {
	CandidateTTL time.Duration `env:"CANDIDATE_TTL" envDefault:"30m"`
	Window       time.Duration `env:"WINDOW" envDefault:"720h"`
}

// Load parses configuration from environment variables. A non-empty Docker
// secret file takes precedence over TELEGRAM_BOT_TOKEN.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if token := readSecret(cfg.TokenFile); token != "" {
		cfg.TelegramToken = token
	}
	cfg.TelegramToken = strings.TrimSpace(cfg.TelegramToken)
	if cfg.TelegramToken == "" {
		return nil, ErrNoToken
	}

	return &cfg, nil
}

func readSecret(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
