package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all defaults applied.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	return &cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Accents = map[string][]string{"n": {"ñ"}}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.ReleaseTimeout = time.Minute
	cfg.Popup.Offset = 99
	cfg.Accents = map[string][]string{
		"ab": {"x"},
		"z":  {},
	}

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 4)

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "release_timeout")
	assert.Contains(t, fields, "popup.offset")
	assert.Contains(t, fields, "accents[ab]")
	assert.Contains(t, fields, "accents[z]")
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: catppuccin\n"), 0o644))

	cfg := validConfig(t)
	result := cfg.ValidateDeep(path)

	assert.True(t, result.IsValid())
	assert.Equal(t, 0, result.ErrorCount())
	require.NotEmpty(t, result.Checks)

	last := result.Checks[len(result.Checks)-1]
	assert.Equal(t, "Accents", last.Category)
	assert.Contains(t, last.Details, "e: é è ê ë")
}

func TestValidateDeep_MissingFileIsFine(t *testing.T) {
	cfg := validConfig(t)
	result := cfg.ValidateDeep(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.True(t, result.IsValid())
	assert.Contains(t, result.Checks[0].Message, "not found, using defaults")
}

func TestValidateDeep_DirectoryAsConfig(t *testing.T) {
	cfg := validConfig(t)
	result := cfg.ValidateDeep(t.TempDir())

	require.False(t, result.IsValid())
	assert.Equal(t, "config_file", result.Errors[0].Item)
	assert.Contains(t, result.Errors[0].Message, "is a directory")
}

func TestValidateDeep_InvalidAccents(t *testing.T) {
	cfg := validConfig(t)
	cfg.Accents = map[string][]string{"x": {"", "ẋ"}}

	result := cfg.ValidateDeep("")

	require.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, "accents[x][0]", result.Errors[0].Item)
	assert.Equal(t, "variant is empty", result.Errors[0].Message)
}

func TestWarnings(t *testing.T) {
	t.Run("redundant and duplicate entries", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Accents = map[string][]string{
			"c": {"ç"},
			"n": {"ñ", "ñ"},
		}

		warnings := cfg.Warnings()
		require.Len(t, warnings, 2)
		assert.Equal(t, "c", warnings[0].Item)
		assert.Contains(t, warnings[0].Message, "built-in")
		assert.Equal(t, "n", warnings[1].Item)
		assert.Contains(t, warnings[1].Message, "more than once")
	})

	t.Run("replace with nothing", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.ReplaceDefault = true

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Message, "cycling is disabled")
	})
}
