// Package config reads the generator defaults from the environment. Command
// line flags override them.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the generator settings.
type Config struct {
	// ConfigFile is the YAML request file.
	ConfigFile string `env:"DERIVE_CONFIG"`
	// Scan lists package patterns searched for //derive: directives.
	Scan []string `env:"DERIVE_SCAN" envSeparator:","`
	// Packages lists additional package patterns loaded as sources.
	Packages []string `env:"DERIVE_PACKAGES" envSeparator:","`
	// OutputDir, when set, receives every generated file instead of the
	// target package directories.
	OutputDir string `env:"DERIVE_OUT"`
	// GoVersion overrides the Go version read from the target module's go.mod.
	GoVersion string `env:"DERIVE_GO_VERSION"`
	// Workers bounds concurrent target resolution; 0 uses GOMAXPROCS.
	Workers int `env:"DERIVE_WORKERS" envDefault:"0"`
	// Strict makes warnings fail the run.
	Strict bool `env:"DERIVE_STRICT" envDefault:"false"`
	// DebugUnformatted keeps generated source that fails gofmt.
	DebugUnformatted bool `env:"DERIVE_DEBUG_UNFORMATTED" envDefault:"false"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}

	return nil
}
