package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

const (
	CatalogMemory = "memory"
	CatalogSQLite = "sqlite"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"3000"`
	Environment  string `env:"ENV" envDefault:"development"`
	ReadTimeout  int    `env:"READ_TIMEOUT" envDefault:"10"`
	WriteTimeout int    `env:"WRITE_TIMEOUT" envDefault:"10"`
	LogFilePath  string `env:"LOG_FILE_PATH" envDefault:"logs/residence.log"`

	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"memory"`
	CatalogDBPath string `env:"CATALOG_DB_PATH" envDefault:"data/db/catalog.db"`

	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionCleanup time.Duration `env:"SESSION_CLEANUP" envDefault:"10m"`

	FloorPlanScale float64 `env:"FLOOR_PLAN_SCALE" envDefault:"12"`
	ExportDir      string  `env:"EXPORT_DIR" envDefault:"exports"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseEnv fills target from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case CatalogMemory, CatalogSQLite:
	default:
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", CatalogMemory, CatalogSQLite, c.CatalogSource)
	}
	if c.FloorPlanScale <= 0 {
		return fmt.Errorf("FLOOR_PLAN_SCALE must be positive, got %v", c.FloorPlanScale)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL)
	}
	return nil
}
