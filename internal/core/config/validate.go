package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/accentflow/internal/core/accent"
	"github.com/colonyops/accentflow/internal/core/styles"
)

// ValidationError is a fatal configuration issue.
type ValidationError struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidationCheck records a check that passed.
type ValidationCheck struct {
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
}

// ValidationResult is the outcome of a full configuration check.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
	Checks   []ValidationCheck
}

// IsValid reports whether no errors were found.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ErrorCount returns the number of errors.
func (r *ValidationResult) ErrorCount() int {
	return len(r.Errors)
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, knownTheme),
		c.validateTiming(),
		c.validateStatus(),
		c.validateAccents(),
	)
}

// ValidateDeep runs Validate and additionally checks the config file
// itself, collecting everything into a ValidationResult for reporting.
func (c *Config) ValidateDeep(configPath string) *ValidationResult {
	result := &ValidationResult{}

	if err := validateConfigFile(configPath); err != nil {
		result.addFieldErrors("Config file", err)
	} else if configPath != "" {
		result.Checks = append(result.Checks, ValidationCheck{
			Category: "Config file",
			Message:  configFileMessage(configPath),
		})
	}

	if err := c.Validate(); err != nil {
		result.addFieldErrors("Config", err)
		return result
	}
	result.Checks = append(result.Checks, ValidationCheck{Category: "Config", Message: "structure valid"})

	tbl, err := c.Table()
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Category: "Accents",
			Message:  err.Error(),
			Fix:      "each base must be a single character with at least one non-empty variant",
		})
		return result
	}

	details := make([]string, 0, len(tbl.Bases()))
	for _, b := range tbl.Bases() {
		vs, _ := tbl.Variants(b)
		details = append(details, fmt.Sprintf("%c: %s", b, strings.Join(vs, " ")))
	}
	result.Checks = append(result.Checks, ValidationCheck{
		Category: "Accents",
		Message:  fmt.Sprintf("%d base letters", len(details)),
		Details:  details,
	})

	result.Warnings = append(result.Warnings, c.Warnings()...)
	return result
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	defaults := accent.DefaultMappings()
	for _, base := range sortedKeys(c.Accents) {
		vs := c.Accents[base]
		if !c.ReplaceDefault && slices.Equal(defaults[base], vs) {
			warnings = append(warnings, ValidationWarning{
				Category: "Accents",
				Item:     base,
				Message:  "same as the built-in variants; entry can be removed",
			})
		}
		seen := map[string]bool{}
		for _, v := range vs {
			if seen[v] {
				warnings = append(warnings, ValidationWarning{
					Category: "Accents",
					Item:     base,
					Message:  fmt.Sprintf("variant %q listed more than once", v),
				})
			}
			seen[v] = true
		}
	}

	if c.ReplaceDefault && len(c.Accents) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Accents",
			Message:  "replace_defaults is set but no accents are defined; cycling is disabled",
		})
	}

	return warnings
}

func (r *ValidationResult) addFieldErrors(category string, err error) {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		r.Errors = append(r.Errors, ValidationError{Category: category, Message: err.Error()})
		return
	}
	for _, fe := range fieldErrs {
		r.Errors = append(r.Errors, ValidationError{
			Category: category,
			Item:     fe.Field,
			Message:  fe.Err.Error(),
		})
	}
}

func (c *Config) validateTiming() error {
	var errs criterio.FieldErrorsBuilder
	if c.ReleaseTimeout < MinReleaseTimeout || c.ReleaseTimeout > MaxReleaseTimeout {
		errs = errs.Append("release_timeout",
			fmt.Errorf("must be between %s and %s, got %s", MinReleaseTimeout, MaxReleaseTimeout, c.ReleaseTimeout))
	}
	if c.Popup.Offset < 0 || c.Popup.Offset > MaxPopupOffset {
		errs = errs.Append("popup.offset", fmt.Errorf("must be between 0 and %d, got %d", MaxPopupOffset, c.Popup.Offset))
	}
	return errs.ToError()
}

func (c *Config) validateStatus() error {
	return criterio.ValidateStruct(
		criterio.Run("status.ready", c.Status.Ready, notBlank),
		criterio.Run("status.selecting", c.Status.Selecting, notBlank),
	)
}

func (c *Config) validateAccents() error {
	var errs criterio.FieldErrorsBuilder
	for _, base := range sortedKeys(c.Accents) {
		field := fmt.Sprintf("accents[%s]", base)
		if _, err := accent.ParseBase(base); err != nil {
			errs = errs.Append(field, err)
			continue
		}
		vs := c.Accents[base]
		if len(vs) == 0 {
			errs = errs.Append(field, fmt.Errorf("needs at least one variant"))
			continue
		}
		for i, v := range vs {
			if v == "" {
				errs = errs.Append(fmt.Sprintf("%s[%d]", field, i), fmt.Errorf("variant is empty"))
			}
		}
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func configFileMessage(configPath string) string {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return configPath + " not found, using defaults"
	}
	return configPath
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

func sortedKeys(m map[string][]string) []string {
	return slices.Sorted(maps.Keys(m))
}
