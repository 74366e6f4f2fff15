package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// HTTP server port
	Port string `env:"PORT" envDefault:"5250"`

	Registry struct {
		// Base URL of the public transaction registry
		BaseURL string `env:"MOLIT_BASE_URL" envDefault:"https://apis.data.go.kr/1613000"`

		// Service key issued for the registry API
		ServiceKey string `env:"MOLIT_SERVICE_KEY"`

		// Timeout applied to each individual registry fetch
		FetchTimeout time.Duration `env:"MOLIT_FETCH_TIMEOUT" envDefault:"10s"`
	}

	Cache struct {
		// Path of the sqlite cache database; empty disables caching
		Path string `env:"CACHE_PATH" envDefault:"database/rentradar.db"`

		// How long a cached month stays fresh
		TTL time.Duration `env:"CACHE_TTL" envDefault:"6h"`
	}

	Scheduler struct {
		// Whether the background cache pre-warm loop runs
		Enabled bool `env:"PREWARM_ENABLED" envDefault:"true"`

		// Interval between pre-warm sweeps
		Interval time.Duration `env:"PREWARM_INTERVAL" envDefault:"1h"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
