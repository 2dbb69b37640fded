package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/accentflow/internal/core/config"
	"github.com/colonyops/accentflow/internal/core/eventbus"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands.
	// When loading fails it holds the defaults and ConfigErr the reason.
	Config    *config.Config
	ConfigErr error

	// Bus carries controller notifications; started in the Before hook
	Bus *eventbus.EventBus
}

// LoadedConfig returns the config, or the load error for commands that
// cannot run on defaults.
func (f *Flags) LoadedConfig() (*config.Config, error) {
	if f.ConfigErr != nil {
		return nil, fmt.Errorf("load config %s: %w", f.ConfigPath, f.ConfigErr)
	}
	if f.Config == nil {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return f.Config, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "accentflow", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/accentflow/accentflow.log
// On Linux: $XDG_STATE_HOME/accentflow/accentflow.log (defaults to ~/.local/state/accentflow/accentflow.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "accentflow", "accentflow.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "accentflow", "accentflow.log")
	}

	return filepath.Join(home, ".local", "state", "accentflow", "accentflow.log")
}
