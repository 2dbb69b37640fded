package doctor

import (
	"context"
	"os"
	"path/filepath"
)

// LogFileCheck verifies the log file can be created and appended to.
type LogFileCheck struct {
	path string
}

// NewLogFileCheck creates a log file check. An empty path means stderr.
func NewLogFileCheck(path string) *LogFileCheck {
	return &LogFileCheck{path: path}
}

func (c *LogFileCheck) Name() string {
	return "Logging"
}

func (c *LogFileCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.path == "" {
		result.Items = append(result.Items, CheckItem{Label: "Log file", Status: StatusPass, Detail: "stderr"})
		return result
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		result.Items = append(result.Items, CheckItem{Label: "Log file", Status: StatusFail, Detail: err.Error()})
		return result
	}

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: "Log file", Status: StatusFail, Detail: err.Error()})
		return result
	}
	_ = f.Close()

	result.Items = append(result.Items, CheckItem{Label: "Log file", Status: StatusPass, Detail: c.path})
	return result
}
