// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv" // optional .env file for local development

	"golang.org/x/crypto/bcrypt"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The signing secret, port and database DSN have
// no defaults: a server started without them refuses to boot.
type Config struct {
	Env         string        // application environment (e.g. "dev", "prod")
	Port        string        // HTTP port to listen on
	DSN         string        // go-sql-driver DSN, e.g. user:pass@tcp(db:3306)/park
	AutoMigrate bool          // apply embedded migrations on startup
	JWTSecret   string        // secret used to sign session tokens
	TokenTTL    time.Duration // session token lifetime
	BcryptCost  int           // bcrypt cost for password hashing
	LogLevel    slog.Level    // minimum level written by the logger
	CORSOrigins []string      // allowed browser origins
	AMQPURL     string        // RabbitMQ URL; empty disables event publishing
}

// Load reads configuration values from the environment, after merging a
// .env file from the working directory when one exists. Every missing
// required variable is reported in a single error.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env file is fine

	var missing []string
	must := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:         getenv("APP_ENV", "dev"),
		Port:        must("APP_PORT"),
		DSN:         must("DB_DSN"),
		AutoMigrate: envBool("DB_AUTOMIGRATE", true),
		JWTSecret:   must("JWT_SECRET"),
		BcryptCost:  atoi(getenv("BCRYPT_COST", "10")),
		LogLevel:    parseLevel(getenv("LOG_LEVEL", "info")),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),
		AMQPURL:     amqpURL(),
	}
	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl
	if len(missing) > 0 {
		sort.Strings(missing)
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("invalid APP_PORT %q", cfg.Port)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

func amqpURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}
