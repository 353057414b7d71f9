package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv               string
	Port                 string
	GeminiAPIKey         string
	GeminiAnalyzeModel   string
	GeminiEditModel      string
	CORSAllowedOrigins   []string
	UploadMaxBytes       int64
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
	HTTPReadTimeout      time.Duration
	HTTPWriteTimeout     time.Duration
	HTTPIdleTimeout      time.Duration
	RateLimitPerMin      int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. A missing GEMINI_API_KEY is a startup failure, not a
// recoverable condition.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:               getEnv("APP_ENV", "development"),
		Port:                 getEnv("PORT", "8080"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiAnalyzeModel:   getEnv("GEMINI_ANALYZE_MODEL", "gemini-2.5-flash"),
		GeminiEditModel:      getEnv("GEMINI_EDIT_MODEL", "gemini-2.5-flash-image"),
		CORSAllowedOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		UploadMaxBytes:       int64(getEnvInt("UPLOAD_MAX_BYTES", 8<<20)),
		SessionIdleTimeout:   time.Second * time.Duration(getEnvInt("SESSION_IDLE_TIMEOUT_SECONDS", 1800)),
		SessionSweepInterval: time.Second * time.Duration(getEnvInt("SESSION_SWEEP_INTERVAL_SECONDS", 300)),
		HTTPReadTimeout:      time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:     time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:      time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:      getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	// The registry sweeper tickers on this interval; zero panics.
	if cfg.SessionSweepInterval < time.Second {
		cfg.SessionSweepInterval = time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
