package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is the process configuration, read from the environment.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// DatabaseURL is either a postgres:// URL or a SQLite file path.
	DatabaseURL string
	// LogMode selects the zap config ("development" or "production").
	LogMode string
	// CORSOrigins allowed to call the API.
	CORSOrigins []string

	// ReminderHour is the UTC hour for the daily due-items reminder.
	ReminderHour int
	// TelegramToken and TelegramChatID enable the Telegram reminder when
	// both are set.
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from the environment with defaults suitable for
// local development.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "data/review_tool.db"),
		LogMode:        getEnv("LOG_MODE", "development"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		ReminderHour:   getEnvAsInt("REMINDER_HOUR", 9),
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
	}
}

// RemindersEnabled reports whether the Telegram reminder job should run.
func (c *Config) RemindersEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvAsInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
