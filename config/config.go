package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Database configuration
	Database struct {
		// Path to the SQLite database file
		Path string `env:"DB_PATH" envDefault:"database/estate.db"`
	}

	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port int `env:"SERVER_PORT" envDefault:"5250"`
	}

	// Seed configuration for the demo data generator
	Seed struct {
		// Number of customers and agents to generate
		People int `env:"SEED_PEOPLE" envDefault:"20"`

		// Number of offices and houses to generate
		Places int `env:"SEED_PLACES" envDefault:"20"`

		// Number of listings and attempted sales to generate
		Listings int `env:"SEED_LISTINGS" envDefault:"20"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
