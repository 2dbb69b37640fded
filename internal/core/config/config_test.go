package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/accentflow/internal/core/accent"
	"github.com/colonyops/accentflow/internal/core/styles"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, styles.DefaultTheme, cfg.Theme)
	assert.Equal(t, 700*time.Millisecond, cfg.ReleaseTimeout)
	assert.Equal(t, 0, cfg.Popup.Offset)
	assert.Equal(t, "ready", cfg.Status.Ready)
	assert.Equal(t, "selecting", cfg.Status.Selecting)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().ReleaseTimeout, cfg.ReleaseTimeout)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
theme: gruvbox
release_timeout: 1s
popup:
  offset: 2
status:
  ready: prêt
accents:
  n: ["ñ"]
  e: ["ę", "ė"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, time.Second, cfg.ReleaseTimeout)
	assert.Equal(t, 2, cfg.Popup.Offset)
	assert.Equal(t, "prêt", cfg.Status.Ready)
	assert.Equal(t, "selecting", cfg.Status.Selecting, "unset label keeps its default")

	tbl, err := cfg.Table()
	require.NoError(t, err)

	vs, ok := tbl.Variants('n')
	require.True(t, ok)
	assert.Equal(t, []string{"ñ"}, vs)

	vs, _ = tbl.Variants('e')
	assert.Equal(t, []string{"ę", "ė"}, vs, "user entry overrides the built-in one")

	assert.True(t, tbl.Has('a'), "built-in entries are kept")
}

func TestLoad_ReplaceDefaults(t *testing.T) {
	path := writeConfig(t, `
replace_defaults: true
accents:
  s: ["ß"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	tbl, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, []rune{'s'}, tbl.Bases())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "theme: [", "parse config file"},
		{"multi-rune base", "accents:\n  ae: [\"æ\"]\n", "single character"},
		{"empty variants", "accents:\n  x: []\n", "needs at least one variant"},
		{"empty variant", "accents:\n  x: [\"\"]\n", "variant is empty"},
		{"unknown theme", "theme: neon\n", "unknown theme"},
		{"timeout too small", "release_timeout: 1ms\n", "between 50ms and 10s"},
		{"negative offset", "popup:\n  offset: -1\n", "between 0 and 10"},
		{"blank label", "status:\n  ready: \"  \"\n", "cannot be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultTableRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReplaceDefault = true
	cfg.Accents = accent.DefaultMappings()

	data, err := cfg.Marshal()
	require.NoError(t, err)

	path := writeConfig(t, string(data))
	loaded, err := Load(path)
	require.NoError(t, err)

	got, err := loaded.Table()
	require.NoError(t, err)
	assert.Equal(t, accent.Default().Mappings(), got.Mappings())
	assert.Equal(t, cfg.ReleaseTimeout, loaded.ReleaseTimeout)
}

func TestRead_SkipsValidation(t *testing.T) {
	cfg, err := Read(writeConfig(t, "theme: neon\nrelease_timeout: 1ms\n"))
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Error(t, cfg.Validate())

	_, err = Read(writeConfig(t, "theme: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}
