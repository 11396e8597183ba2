package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a trip repository.
const FileName = "tripsplit.yaml"

// Config represents the top-level tripsplit.yaml configuration.
type Config struct {
	Trip   TripConfig   `yaml:"trip"`
	Git    GitConfig    `yaml:"git"`
	Server ServerConfig `yaml:"server"`
}

// TripConfig identifies the trip the ledger belongs to.
type TripConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // display label only; amounts are never converted
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// ServerConfig controls the HTTP API started by `tripsplit serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a tripsplit.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new trip.
func Default(tripName, currency string) *Config {
	if currency == "" {
		currency = "USD"
	}
	return &Config{
		Trip: TripConfig{
			Name:     tripName,
			Currency: currency,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "tripsplit",
			AuthorEmail: "ledger@tripsplit.dev",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
