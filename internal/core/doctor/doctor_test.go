package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (c staticCheck) Name() string { return c.name }

func (c staticCheck) Run(context.Context) Result {
	return Result{Name: c.name, Items: c.items}
}

func TestRunAllAndSummary(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		staticCheck{name: "a", items: []CheckItem{
			{Label: "one", Status: StatusPass},
			{Label: "two", Status: StatusWarn, Fixable: true},
		}},
		staticCheck{name: "b", items: []CheckItem{
			{Label: "three", Status: StatusFail, Fixable: true},
			{Label: "four", Status: StatusPass, Fixable: true},
		}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, CountFixable(results))
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestConfigCheck(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		result := NewConfigCheck(filepath.Join(t.TempDir(), "nope.yaml")).Run(context.Background())

		assert.Equal(t, "Configuration", result.Name)
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusWarn, result.Items[0].Status)
		assert.True(t, result.Items[0].Fixable)
	})

	t.Run("valid file", func(t *testing.T) {
		p := writeConfig(t, "replace_defaults: true\naccents:\n  n: [\"ñ\"]\n  e: [\"é\", \"è\"]\n")
		result := NewConfigCheck(p).Run(context.Background())

		require.Len(t, result.Items, 2)
		assert.Equal(t, StatusPass, result.Items[0].Status)
		assert.Equal(t, p, result.Items[0].Detail)
		assert.Equal(t, "2 base letters", result.Items[1].Detail)
	})

	t.Run("warnings", func(t *testing.T) {
		p := writeConfig(t, "accents:\n  n: [\"ñ\", \"ñ\"]\n")
		result := NewConfigCheck(p).Run(context.Background())

		require.Len(t, result.Items, 3)
		assert.Equal(t, StatusWarn, result.Items[2].Status)
		assert.Contains(t, result.Items[2].Detail, "n: ")
		assert.Contains(t, result.Items[2].Detail, "more than once")
	})

	t.Run("invalid file", func(t *testing.T) {
		p := writeConfig(t, "theme: nope\n")
		result := NewConfigCheck(p).Run(context.Background())

		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
		assert.Contains(t, result.Items[0].Detail, "unknown theme")
	})
}

func stubTerminal(t *testing.T, tty bool, env map[string]string, platform string) {
	t.Helper()
	origTTY, origEnv, origOS := isTerminalFunc, getenvFunc, goos
	t.Cleanup(func() {
		isTerminalFunc, getenvFunc, goos = origTTY, origEnv, origOS
	})

	isTerminalFunc = func(int) bool { return tty }
	getenvFunc = func(k string) string { return env[k] }
	goos = platform
}

func TestTerminalCheck_AllGood(t *testing.T) {
	stubTerminal(t, true, map[string]string{"TERM": "xterm-256color"}, "linux")

	result := NewTerminalCheck().Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, StatusPass, result.Items[1].Status)
	assert.Equal(t, "xterm-256color", result.Items[1].Detail)
}

func TestTerminalCheck_Problems(t *testing.T) {
	stubTerminal(t, false, map[string]string{
		"TERM":         "dumb",
		"TMUX":         "/tmp/tmux-1000/default,1,0",
		"TERM_PROGRAM": "Apple_Terminal",
	}, "darwin")

	result := NewTerminalCheck().Run(context.Background())

	require.Len(t, result.Items, 4)
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
	assert.Equal(t, "tmux", result.Items[2].Label)
	assert.Contains(t, result.Items[2].Detail, "focus-events")
	assert.Equal(t, "Option key", result.Items[3].Label)
}

func TestLogFileCheck(t *testing.T) {
	t.Run("stderr", func(t *testing.T) {
		result := NewLogFileCheck("").Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, "stderr", result.Items[0].Detail)
	})

	t.Run("creates directories", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "state", "accentflow", "accentflow.log")
		result := NewLogFileCheck(p).Run(context.Background())

		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusPass, result.Items[0].Status)
		assert.FileExists(t, p)
	})

	t.Run("parent is a file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))

		result := NewLogFileCheck(filepath.Join(blocker, "x.log")).Run(context.Background())
		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
	})
}
