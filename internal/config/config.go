package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	ResetDB     bool
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	JWTExpire   time.Duration
	// Failed logins allowed per email inside LoginWindow before further attempts are refused.
	LoginMaxAttempts int
	LoginWindow      time.Duration
	CORSOrigins      []string
	StaticDir        string
	SwaggerHost      string
	LogLevel         string
	// File path or http(s) URL read by the seed tool.
	SeedSource string
}

const defaultMySQLDSN = "user:password@tcp(localhost:3306)/college_events?charset=utf8mb4&parseTime=True&loc=Local"

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	origins := getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"})
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		origins = append(origins, frontend)
	}

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "5000"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN:      getEnv("DATABASE_DSN", getEnv("MYSQL_DSN", defaultMySQLDSN)),
		ResetDB:          getEnvBool("RESET_DB", false),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		JWTExpire:        getEnvDuration("JWT_EXPIRE", 24*time.Hour),
		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:      getEnvDuration("LOGIN_WINDOW", 15*time.Minute),
		CORSOrigins:      origins,
		StaticDir:        os.Getenv("STATIC_DIR"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SeedSource:       getEnv("SEED_SOURCE", "cmd/seed/sample.json"),
	}
}

// SlogLevel parses LogLevel, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
