package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env      string
	Port     string
	Postgres PostgresConfig
	Auth     AuthConfig
	Cleanup  CleanupConfig
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	AccessSecret    string
	RefreshSecret   string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	ResetTokenTTL   time.Duration
	EchoResetTokens bool
}

type CleanupConfig struct {
	Interval time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Env:  getenv("APP_ENV", EnvDevelopment),
		Port: getenv("PORT", "5000"),
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
			RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		},
	}

	var err error
	if cfg.Auth.AccessTTL, err = parseDuration("JWT_ACCESS_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Auth.RefreshTTL, err = parseDuration("JWT_REFRESH_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.Auth.ResetTokenTTL, err = parseDuration("RESET_TOKEN_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.Cleanup.Interval, err = parseDuration("CLEANUP_INTERVAL", time.Hour); err != nil {
		return Config{}, err
	}

	switch echo := getenv("ECHO_RESET_TOKENS", "false"); echo {
	case "true":
		cfg.Auth.EchoResetTokens = true
	case "false":
		cfg.Auth.EchoResetTokens = false
	default:
		return Config{}, fmt.Errorf("invalid ECHO_RESET_TOKENS: %q", echo)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("invalid APP_ENV: %q", c.Env)
	}
	if c.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.Auth.RefreshSecret == "" {
		return fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	// Distinct secrets keep a leaked access secret from minting refresh tokens.
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	// Reset tokens must reach users over the out-of-band channel only.
	if c.Auth.EchoResetTokens && c.Env == EnvProduction {
		return fmt.Errorf("ECHO_RESET_TOKENS must not be enabled in production")
	}
	return nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
