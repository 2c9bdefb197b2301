// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8084"`
	CatalogURL string `env:"CATALOG_URL" envDefault:"https://fakestoreapi.com"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	Storage     string `env:"CART_STORAGE" envDefault:"file"`
	StoragePath string `env:"CART_STORAGE_PATH" envDefault:"minicart.json"`
	DatabaseURL string `env:"DATABASE_URL"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsToken   string `env:"METRICS_TOKEN"`

	RateLimit       int           `env:"CART_RATE_LIMIT" envDefault:"120"`
	RateLimitWindow time.Duration `env:"CART_RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Storage) {
	case StorageMemory:
	case StorageFile, StorageSQLite:
		if strings.TrimSpace(c.StoragePath) == "" {
			return fmt.Errorf("CART_STORAGE_PATH is required for %s storage", c.Storage)
		}
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown CART_STORAGE %q", c.Storage)
	}

	if strings.TrimSpace(c.CatalogURL) == "" {
		return fmt.Errorf("CATALOG_URL is required")
	}
	return nil
}
