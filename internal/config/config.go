package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Narrator provider names accepted in NARRATOR.
const (
	NarratorAuto   = "auto"
	NarratorCanned = "canned"
	NarratorGemini = "gemini"
	NarratorOpenAI = "openai"
)

// Config holds the application configuration. Credentials are read once at
// start-up and handed to the components that need them.
type Config struct {
	WorldPath       string
	Narrator        string
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	NarratorTimeout time.Duration
	Addr            string
	SessionTTL      time.Duration
	Environment     string
	LogLevel        slog.Level
}

// LoadConfig loads the configuration from environment variables. A missing
// API key is not an error: the game falls back to canned narration.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		WorldPath:    os.Getenv("ADVENTURE_WORLD"),
		Narrator:     strings.ToLower(getEnv("NARRATOR", NarratorAuto)),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		Addr:         getEnv("ADDR", ":8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.Narrator {
	case NarratorAuto, NarratorCanned, NarratorGemini, NarratorOpenAI:
	default:
		return nil, fmt.Errorf("NARRATOR %q is invalid; valid values: auto, canned, gemini, openai", cfg.Narrator)
	}

	if cfg.OpenAIAPIKey == "" {
		if path := os.Getenv("OPENAI_API_KEY_FILE"); path != "" {
			key, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read OPENAI_API_KEY_FILE: %w", err)
			}
			cfg.OpenAIAPIKey = strings.TrimSpace(string(key))
		}
	}

	timeout, err := time.ParseDuration(getEnv("NARRATOR_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("NARRATOR_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("NARRATOR_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.NarratorTimeout = timeout

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is invalid; valid values: debug, info, warn, error", level)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
