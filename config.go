package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the server settings read from the environment
type Config struct {
	Port            string
	CatalogAPIURL   string
	RecommendAPIURL string
	UpstreamTimeout time.Duration
	DatabasePath    string
	AllowedOrigins  []string

	SessionIdleTimeout time.Duration
	EventRetention     time.Duration

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func loadConfig() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		CatalogAPIURL:      getEnv("CATALOG_API_URL", "http://localhost:3001/api"),
		RecommendAPIURL:    getEnv("RECOMMEND_API_URL", "http://localhost:3001/api"),
		UpstreamTimeout:    time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		DatabasePath:       lookupEnv("DATABASE_PATH", "discover.db"),
		AllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		SessionIdleTimeout: time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		EventRetention:     7 * 24 * time.Hour,
		LogFile:            os.Getenv("LOG_FILE"),
		LogMaxSizeMB:       getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups:      getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:      getEnvInt("LOG_MAX_AGE_DAYS", 28),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// lookupEnv is getEnv that keeps an explicitly empty value
func lookupEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
