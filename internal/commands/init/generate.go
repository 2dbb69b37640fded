package initcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/colonyops/accentflow/internal/core/config"
)

// ConfigOptions are the answers collected by the wizard.
type ConfigOptions struct {
	Theme           string
	ReleaseTimeout  time.Duration
	ReplaceDefaults bool
	Ready           string
	Selecting       string
}

// DefaultConfigOptions mirrors config.DefaultConfig.
func DefaultConfigOptions() ConfigOptions {
	d := config.DefaultConfig()
	return ConfigOptions{
		Theme:          d.Theme,
		ReleaseTimeout: d.ReleaseTimeout,
		Ready:          d.Status.Ready,
		Selecting:      d.Status.Selecting,
	}
}

// GenerateConfig builds a config from the wizard answers. With
// ReplaceDefaults the built-in table is copied into the file so it can be
// edited in place.
func GenerateConfig(opts ConfigOptions) config.Config {
	cfg := config.DefaultConfig()
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if opts.ReleaseTimeout > 0 {
		cfg.ReleaseTimeout = opts.ReleaseTimeout
	}
	if opts.Ready != "" {
		cfg.Status.Ready = opts.Ready
	}
	if opts.Selecting != "" {
		cfg.Status.Selecting = opts.Selecting
	}
	if opts.ReplaceDefaults {
		cfg.Accents = cfg.Mappings()
		cfg.ReplaceDefault = true
	}
	return cfg
}

const configHeader = `# accentflow configuration
# Hold Alt and press a letter repeatedly to cycle its accented variants.
# Entries under accents extend the built-in table unless replace_defaults
# is true.
`

// WriteConfig validates cfg and writes it to path, creating parent
// directories.
func WriteConfig(cfg config.Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
