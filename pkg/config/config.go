package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error fatal panic"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Ledger struct {
		// Path to a ledger CSV loaded at startup. Optional; the API upload
		// endpoint works either way.
		Path string `yaml:"path"`
		// Cron spec for reloading Path and recomputing. Empty disables it.
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"ledger"`
	Model struct {
		Horizon            int     `yaml:"horizon" default:"60" validate:"gte=1,lte=366"`
		RollingWindow      int     `yaml:"rolling_window" default:"14" validate:"gte=1"`
		Alpha              float64 `yaml:"alpha" default:"0.7" validate:"gte=0,lte=1"`
		StressPct          float64 `yaml:"stress_pct" default:"0.15" validate:"gte=0,lte=1"`
		ConfidenceFactor   float64 `yaml:"confidence_factor" default:"1.65" validate:"gte=0"`
		StructuralQuantile float64 `yaml:"structural_quantile" default:"0.25" validate:"gt=0,lt=1"`
		Workers            int     `yaml:"workers" default:"4" validate:"gte=1,lte=64"`
	} `yaml:"model"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file, applying documented
// defaults to every omitted field.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("LEDGER_PATH"); v != "" {
		c.Ledger.Path = v
	}
	if v := os.Getenv("LEDGER_REFRESH_CRON"); v != "" {
		c.Ledger.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	return c, nil
}

// Default returns a Config with every field at its documented default,
// useful for programmatic embedding and tests.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}
