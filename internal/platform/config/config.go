// Package config builds runtime configuration from the environment so main
// stays lean. Secrets (JWT signing key, admin PIN, database password) have no
// defaults: the process refuses to start without them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr string

	Database DatabaseConfig
	Redis    RedisConfig

	// JWTSigningKey signs session tokens. Required.
	JWTSigningKey string
	// AdminPIN is the shared second factor. Required.
	AdminPIN string
	// SessionTTL bounds session token lifetime.
	SessionTTL time.Duration

	// SchedulerInterval is how often the cleanup worker polls for due tasks.
	SchedulerInterval time.Duration
	// StatsCacheTTL bounds dashboard aggregate staleness.
	StatsCacheTTL time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the database config as a connection string for database/sql.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	// URL is optional; empty disables the stats cache.
	URL string
}

// FromEnv loads configuration, returning an error for any missing required
// value rather than falling back to an insecure default.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:              envOr("POSADMIN_ADDR", ":8080"),
		SessionTTL:        time.Hour,
		SchedulerInterval: 30 * time.Second,
		StatsCacheTTL:     time.Minute,
	}

	var err error
	if cfg.JWTSigningKey, err = required("JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.AdminPIN, err = required("ADMIN_PIN"); err != nil {
		return nil, err
	}

	if cfg.Database.Host, err = required("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.User, err = required("DB_USER"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = required("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = required("DB_NAME"); err != nil {
		return nil, err
	}
	port := envOr("DB_PORT", "5432")
	cfg.Database.Port, err = strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT %q: %w", port, err)
	}
	cfg.Database.SSLMode = envOr("DB_SSLMODE", "disable")

	cfg.Redis.URL = os.Getenv("REDIS_URL")

	if v := os.Getenv("SCHEDULER_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCHEDULER_INTERVAL %q: %w", v, err)
		}
		cfg.SchedulerInterval = d
	}

	return cfg, nil
}

func required(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("missing required environment variable %s", key)
	}
	return v, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
