package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	AccountingURL     string
	AccountingTimeout time.Duration
	Environment       string
	RunMigrations     bool
	RunSeed           bool
	MigrationsDir     string
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		AccountingURL:     getEnv("ACCOUNTING_URL", "http://localhost:8001"),
		AccountingTimeout: getEnvDuration("ACCOUNTING_TIMEOUT", 5*time.Second),
		Environment:       getEnv("APP_ENV", "development"),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", false),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "migrations"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.AccountingURL) == "" {
		return fmt.Errorf("ACCOUNTING_URL is required")
	}
	if c.AccountingTimeout <= 0 {
		return fmt.Errorf("ACCOUNTING_TIMEOUT must be positive")
	}
	return nil
}
