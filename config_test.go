package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CATALOG_API_URL", "RECOMMEND_API_URL", "UPSTREAM_TIMEOUT_SECONDS", "CORS_ALLOWED_ORIGINS", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg := loadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:3001/api", cfg.CatalogAPIURL)
	assert.Equal(t, "http://localhost:3001/api", cfg.RecommendAPIURL)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DATABASE_PATH", "")

	cfg := loadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.DatabasePath, "an explicit empty path disables the event log")
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("LOG_MAX_BACKUPS", "many")
	assert.Equal(t, 3, getEnvInt("LOG_MAX_BACKUPS", 3))

	t.Setenv("LOG_MAX_BACKUPS", "-1")
	assert.Equal(t, 3, getEnvInt("LOG_MAX_BACKUPS", 3))
}
