package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "DB_DRIVER", "DATABASE_DSN", "MYSQL_DSN", "RESET_DB",
		"JWT_EXPIRE", "LOGIN_MAX_ATTEMPTS", "LOGIN_WINDOW", "CORS_ORIGINS", "FRONTEND_URL", "LOG_LEVEL", "SEED_SOURCE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, defaultMySQLDSN, cfg.DatabaseDSN)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpire)
	assert.Equal(t, 10, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, "cmd/seed/sample.json", cfg.SeedSource)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "postgres://localhost/events")
	t.Setenv("RESET_DB", "true")
	t.Setenv("JWT_EXPIRE", "2h")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("FRONTEND_URL", "https://app.example.com")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/events", cfg.DatabaseDSN)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpire)
	assert.Equal(t, 3, cfg.LoginMaxAttempts)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com", "https://app.example.com"}, cfg.CORSOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "one day")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "many")
	t.Setenv("RESET_DB", "perhaps")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTExpire)
	assert.Equal(t, 10, cfg.LoginMaxAttempts)
	assert.False(t, cfg.ResetDB)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		raw      string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.raw}
			assert.Equal(t, tt.expected, cfg.SlogLevel())
		})
	}
}
