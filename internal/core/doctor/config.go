package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/colonyops/accentflow/internal/core/config"
)

// ConfigCheck loads and validates the config file.
type ConfigCheck struct {
	path string
}

// NewConfigCheck creates a config check for path.
func NewConfigCheck(path string) *ConfigCheck {
	return &ConfigCheck{path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		result.Items = append(result.Items, CheckItem{
			Label:   "Config file",
			Status:  StatusWarn,
			Detail:  c.path + " not found, using built-in defaults",
			Fixable: true,
		})
		return result
	}

	cfg, err := config.Load(c.path)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Config file",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Config file",
		Status: StatusPass,
		Detail: c.path,
	})

	tbl, err := cfg.Table()
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Accent table",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}
	result.Items = append(result.Items, CheckItem{
		Label:  "Accent table",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d base letters", len(tbl.Bases())),
	})

	for _, w := range cfg.Warnings() {
		detail := w.Message
		if w.Item != "" {
			detail = w.Item + ": " + detail
		}
		result.Items = append(result.Items, CheckItem{
			Label:  w.Category,
			Status: StatusWarn,
			Detail: detail,
		})
	}

	return result
}
