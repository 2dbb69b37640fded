// Package config handles configuration loading and validation for accentflow.
package config

import (
	"fmt"
	"maps"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/accentflow/internal/core/accent"
	"github.com/colonyops/accentflow/internal/core/styles"
)

// Limits for user-tunable values.
const (
	MinReleaseTimeout = 50 * time.Millisecond
	MaxReleaseTimeout = 10 * time.Second
	MaxPopupOffset    = 10
)

// Config holds the application configuration.
type Config struct {
	Theme          string              `yaml:"theme"`
	ReleaseTimeout time.Duration       `yaml:"release_timeout"`
	Popup          PopupConfig         `yaml:"popup"`
	Status         StatusConfig        `yaml:"status"`
	ReplaceDefault bool                `yaml:"replace_defaults"` // drop the built-in table instead of extending it
	Accents        map[string][]string `yaml:"accents"`
}

// PopupConfig controls the variant picker.
type PopupConfig struct {
	// Offset is the number of extra rows between the anchor and the popup
	// when it is flipped below the anchor.
	Offset int `yaml:"offset"`
}

// StatusConfig holds the status badge labels.
type StatusConfig struct {
	Ready     string `yaml:"ready"`
	Selecting string `yaml:"selecting"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:          styles.DefaultTheme,
		ReleaseTimeout: 700 * time.Millisecond,
		Status: StatusConfig{
			Ready:     "ready",
			Selecting: "selecting",
		},
		Accents: map[string][]string{},
	}
}

// Load reads configuration from the given path and validates it. If
// configPath is empty or doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file and applies defaults without validating.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.ReleaseTimeout == 0 {
		c.ReleaseTimeout = defaults.ReleaseTimeout
	}
	if c.Status.Ready == "" {
		c.Status.Ready = defaults.Status.Ready
	}
	if c.Status.Selecting == "" {
		c.Status.Selecting = defaults.Status.Selecting
	}
	if c.Accents == nil {
		c.Accents = map[string][]string{}
	}
}

// Mappings returns the effective base-to-variants mappings: the built-in
// table overlaid with user accents, or the user accents alone when
// replace_defaults is set.
func (c *Config) Mappings() map[string][]string {
	out := map[string][]string{}
	if !c.ReplaceDefault {
		out = accent.DefaultMappings()
	}
	maps.Copy(out, c.Accents)
	return out
}

// Table builds the accent table described by the configuration.
func (c *Config) Table() (*accent.Table, error) {
	return accent.New(c.Mappings())
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
