package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment.
// DatabaseURL is optional: when empty the catalog lives in CourseFile.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	CourseFile  string `env:"COURSE_FILE" envDefault:"course_catalog.json"`
	DatabaseURL string `env:"DATABASE_URL"`

	MetricsEnabled bool   `env:"METRICS_ENABLED"`
	MetricsToken   string `env:"METRICS_TOKEN"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
