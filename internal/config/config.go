package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hszk-dev/base-n-shortener/internal/shortener"
)

type Config struct {
	Alphabet string
	Protocol string
	StartID  int64

	// Logging, consumed by the slog handler built in main
	LogLevel  slog.Level
	LogFormat string
}

// Load reads .env if present, then environment variables over the defaults.
// Unparseable values keep their default and are reported with a warning.
func Load() Config {
	cfg := Config{
		Alphabet:  shortener.DefaultAlphabet,
		Protocol:  "http://short.ly/",
		StartID:   4097,
		LogLevel:  slog.LevelInfo,
		LogFormat: "text",
	}

	_ = godotenv.Load(".env")

	cfg.Alphabet = getEnv("SHORTENER_ALPHABET", cfg.Alphabet)
	cfg.Protocol = getEnv("SHORTENER_PROTOCOL", cfg.Protocol)

	if v := os.Getenv("SHORTENER_START_ID"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			slog.Warn("invalid SHORTENER_START_ID, using default", "value", v, "default", cfg.StartID)
		} else {
			cfg.StartID = n
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("invalid LOG_LEVEL, using default", "value", v, "default", cfg.LogLevel.String())
		} else {
			cfg.LogLevel = level
		}
	}

	if v := strings.ToLower(os.Getenv("LOG_FORMAT")); v != "" {
		switch v {
		case "json", "text":
			cfg.LogFormat = v
		default:
			slog.Warn("invalid LOG_FORMAT, using default", "value", v, "default", cfg.LogFormat)
		}
	}

	return cfg
}

// Session returns the settings for one shortener session.
func (c Config) Session() shortener.Config {
	return shortener.Config{
		Alphabet: c.Alphabet,
		Protocol: c.Protocol,
		StartID:  c.StartID,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
