package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Defaults are fixed so a flagless run is reproducible; every value can still
// be overridden through the environment or a .env file.
const (
	DefaultSeed         = 42
	DefaultPatientCount = 100
	DefaultOrderCount   = 200
)

type Config struct {
	Env          string `mapstructure:"ENV"`
	Seed         int64  `mapstructure:"SEED"`
	PatientCount int    `mapstructure:"PATIENT_COUNT"`
	OrderCount   int    `mapstructure:"ORDER_COUNT"`
	CatalogPath  string `mapstructure:"CATALOG_PATH"`
	OutputDir    string `mapstructure:"OUTPUT_DIR"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("SEED", DefaultSeed)
	v.SetDefault("PATIENT_COUNT", DefaultPatientCount)
	v.SetDefault("ORDER_COUNT", DefaultOrderCount)
	v.SetDefault("CATALOG_PATH", "")
	v.SetDefault("OUTPUT_DIR", "output")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("SEED")
	v.BindEnv("PATIENT_COUNT")
	v.BindEnv("ORDER_COUNT")
	v.BindEnv("CATALOG_PATH")
	v.BindEnv("OUTPUT_DIR")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration can drive a generation run.
func (c *Config) Validate() error {
	if c.PatientCount <= 0 {
		return fmt.Errorf("PATIENT_COUNT must be positive, got %d", c.PatientCount)
	}
	if c.OrderCount <= 0 {
		return fmt.Errorf("ORDER_COUNT must be positive, got %d", c.OrderCount)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	return nil
}
