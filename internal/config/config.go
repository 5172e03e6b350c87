// Package config loads runtime settings from configs/.env and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"scheduling/internal/logger"
)

// devJWTSecret is only used outside release mode.
const devJWTSecret = "default_super_secret_key"

type Config struct {
	Port    string
	GinMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret []byte
	JWTTTL    time.Duration

	CORSOrigins []string
	// PublicIntake lets unauthenticated callers create records on behalf of a user they name.
	PublicIntake bool

	Log logger.Config
}

// Load reads configs/.env when it exists, then the process environment.
func Load() (*Config, bool, error) {
	envFile := godotenv.Load("configs/.env") == nil
	cfg, err := FromEnv()
	return cfg, envFile, err
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:       getenv("PORT", "8080"),
		GinMode:    os.Getenv("GIN_MODE"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "postgres"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS",
			"http://localhost:5173,http://127.0.0.1:5173,http://localhost:5174")),
		PublicIntake: os.Getenv("PUBLIC_INTAKE") == "true",
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if cfg.Release() {
			return nil, errors.New("JWT_SECRET environment variable is required in release mode")
		}
		secret = devJWTSecret
	}
	cfg.JWTSecret = []byte(secret)

	ttl, err := time.ParseDuration(getenv("JWT_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL %q", os.Getenv("JWT_TTL"))
	}
	cfg.JWTTTL = ttl

	dev := os.Getenv("LOG_DEV") == "1"
	lvl := os.Getenv("LOG_LEVEL")
	if lvl == "" {
		if dev {
			lvl = "debug"
		} else {
			lvl = "info"
		}
	}
	cfg.Log = logger.Config{Level: lvl, Dev: dev}

	return cfg, nil
}

// Release reports whether gin runs in release mode.
func (c *Config) Release() bool {
	return c.GinMode == "release"
}

// DSN is the postgres connection URL.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
