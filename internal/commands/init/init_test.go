package initcmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/accentflow/internal/core/accent"
	"github.com/colonyops/accentflow/internal/core/config"
	"github.com/colonyops/accentflow/internal/printer"
)

func testContext() (context.Context, *bytes.Buffer) {
	var out bytes.Buffer
	return printer.NewContext(context.Background(), printer.New(&out, &out)), &out
}

func TestGenerateConfig_Defaults(t *testing.T) {
	cfg := GenerateConfig(DefaultConfigOptions())
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestGenerateConfig_ReplaceDefaultsCopiesTable(t *testing.T) {
	cfg := GenerateConfig(ConfigOptions{ReplaceDefaults: true, Theme: "gruvbox"})

	assert.True(t, cfg.ReplaceDefault)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, accent.DefaultMappings(), cfg.Accents)
	assert.Equal(t, accent.DefaultMappings(), cfg.Mappings())
}

func TestWriteConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	opts := DefaultConfigOptions()
	opts.ReleaseTimeout = 400 * time.Millisecond
	opts.Ready = "alt"

	require.NoError(t, WriteConfig(GenerateConfig(opts), path))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, cfg.ReleaseTimeout)
	assert.Equal(t, "alt", cfg.Status.Ready)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# accentflow configuration")
}

func TestWriteConfig_RejectsInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Theme = "nope"

	err := WriteConfig(cfg, filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
}

func TestBackupConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	backup, err := BackupConfig(path)
	require.NoError(t, err)
	assert.Empty(t, backup)

	require.NoError(t, os.WriteFile(path, []byte("theme: paper\n"), 0o600))
	require.NoError(t, os.WriteFile(path+".bak", []byte("old"), 0o644))

	backup, err = BackupConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "theme: paper\n", string(data))

	info, err := os.Stat(backup)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, ConfigExists(filepath.Join(dir, "missing.yaml")))
	assert.False(t, ConfigExists(dir))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.True(t, ConfigExists(path))
}

func TestWizard_YesWritesDefaults(t *testing.T) {
	ctx, out := testContext()
	path := filepath.Join(t.TempDir(), "config.yaml")

	w := NewWizard(WizardOptions{ConfigPath: path, Yes: true, Theme: "kanagawa"})
	w.prompt = func(*ConfigOptions) error {
		t.Fatal("prompt must not run with --yes")
		return nil
	}
	require.NoError(t, w.Run(ctx))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kanagawa", cfg.Theme)

	assert.Contains(t, out.String(), "Created config")
	assert.Contains(t, out.String(), "Configuration")
	assert.Contains(t, out.String(), "accentflow doctor")
}

func TestWizard_YesRefusesExisting(t *testing.T) {
	ctx, _ := testContext()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: paper\n"), 0o644))

	err := NewWizard(WizardOptions{ConfigPath: path, Yes: true}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestWizard_ForceBacksUp(t *testing.T) {
	ctx, out := testContext()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: paper\n"), 0o644))

	require.NoError(t, NewWizard(WizardOptions{ConfigPath: path, Yes: true, Force: true}).Run(ctx))

	assert.FileExists(t, path+".bak")
	assert.Contains(t, out.String(), "Backed up config")
}

func TestWizard_UsesPromptAnswers(t *testing.T) {
	ctx, _ := testContext()
	path := filepath.Join(t.TempDir(), "config.yaml")

	w := NewWizard(WizardOptions{ConfigPath: path})
	w.prompt = func(o *ConfigOptions) error {
		o.Theme = "onedark"
		o.Selecting = "picking"
		return nil
	}
	require.NoError(t, w.Run(ctx))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "onedark", cfg.Theme)
	assert.Equal(t, "picking", cfg.Status.Selecting)
}

func TestWizard_PromptError(t *testing.T) {
	ctx, _ := testContext()
	path := filepath.Join(t.TempDir(), "config.yaml")

	w := NewWizard(WizardOptions{ConfigPath: path})
	w.prompt = func(*ConfigOptions) error { return errors.New("aborted") }

	require.Error(t, w.Run(ctx))
	assert.NoFileExists(t, path)
}

func TestWizard_UnknownTheme(t *testing.T) {
	ctx, _ := testContext()
	err := NewWizard(WizardOptions{ConfigPath: filepath.Join(t.TempDir(), "c.yaml"), Yes: true, Theme: "neon"}).Run(ctx)
	require.Error(t, err)
}

func TestValidTimeout(t *testing.T) {
	require.NoError(t, validTimeout("700ms"))
	require.Error(t, validTimeout("soon"))
	require.Error(t, validTimeout("1ms"))
	require.Error(t, validTimeout("1m"))
}
