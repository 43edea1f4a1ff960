package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	// DBDSN selects the MySQL store; empty keeps everything in memory.
	DBDSN string

	JWTSecret string
	TokenTTL  time.Duration

	AdminEmail    string
	AdminPassword string

	CORSAllowedOrigins []string

	// RedisAddr enables the shared settlement lock when several instances
	// run against one database.
	RedisAddr string

	LogLevel string
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func LoadEnv() Env {
	env := Env{
		AppAddr:       envOrDefault("APP_ADDR", ":8080"),
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret:     envOrDefault("JWT_SECRET", "change-me-in-production"),
		TokenTTL:      envOrDefaultDuration("TOKEN_TTL", 24*time.Hour),
		AdminEmail:    envOrDefault("ADMIN_EMAIL", "admin@transport.com"),
		AdminPassword: envOrDefault("ADMIN_PASSWORD", "admin123"),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		LogLevel:      envOrDefault("LOG_LEVEL", "INFO"),
	}

	env.CORSAllowedOrigins = defaultCORSOrigins
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		env.CORSAllowedOrigins = nil
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	}

	if os.Getenv("JWT_SECRET") == "" {
		slog.Warn("using default key", "key", "JWT_SECRET")
	}
	return env
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def.String())
		return def
	}
	return d
}
