// Package initcmd implements the first-run configuration wizard.
package initcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/accentflow/internal/core/config"
	"github.com/colonyops/accentflow/internal/core/doctor"
	"github.com/colonyops/accentflow/internal/core/styles"
	"github.com/colonyops/accentflow/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	Yes        bool   // skip prompts, use defaults
	Force      bool   // overwrite existing config
	Theme      string // preselected theme, empty for default
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions

	// prompt collects answers; replaced in tests.
	prompt func(*ConfigOptions) error
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts, prompt: promptUser}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	answers := DefaultConfigOptions()
	if w.opts.Theme != "" {
		if _, ok := styles.GetPalette(w.opts.Theme); !ok {
			return fmt.Errorf("unknown theme %q", w.opts.Theme)
		}
		answers.Theme = w.opts.Theme
	}

	if !w.opts.Yes {
		if err := w.prompt(&answers); err != nil {
			return err
		}
	}

	if ConfigExists(w.opts.ConfigPath) {
		backup, err := BackupConfig(w.opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		if backup != "" {
			p.Successf("Backed up config to: %s", backup)
		}
	}

	if err := WriteConfig(GenerateConfig(answers), w.opts.ConfigPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", w.opts.ConfigPath)

	p.Printf("")
	result := doctor.NewConfigCheck(w.opts.ConfigPath).Run(ctx)

	p.Section(result.Name)
	for _, item := range result.Items {
		switch item.Status {
		case doctor.StatusPass:
			p.CheckItem(item.Label, item.Detail)
		case doctor.StatusWarn:
			p.WarnItem(item.Label, item.Detail)
		case doctor.StatusFail:
			p.FailItem(item.Label, item.Detail)
		}
	}

	p.Printf("")
	p.Section("Next Steps")
	p.Printf("  1. Run 'accentflow doctor' to check your terminal")
	p.Printf("  2. Run 'accentflow' and hold Alt while pressing a letter")

	return nil
}

func promptUser(opts *ConfigOptions) error {
	timeout := opts.ReleaseTimeout.String()

	themes := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themes = append(themes, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&opts.Theme),
			huh.NewInput().
				Title("Release timeout").
				Description("How long after the last Alt+letter the choice is committed").
				Value(&timeout).
				Validate(validTimeout),
			huh.NewConfirm().
				Title("Replace the built-in accent table?").
				Description("Copies the table into the config so every letter can be edited").
				Value(&opts.ReplaceDefaults),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Ready label").
				Description("Shown while Alt is held").
				Value(&opts.Ready),
			huh.NewInput().
				Title("Selecting label").
				Description("Shown while cycling through variants").
				Value(&opts.Selecting),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	d, err := time.ParseDuration(timeout)
	if err != nil {
		return err
	}
	opts.ReleaseTimeout = d
	return nil
}

func validTimeout(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d < config.MinReleaseTimeout || d > config.MaxReleaseTimeout {
		return fmt.Errorf("must be between %s and %s", config.MinReleaseTimeout, config.MaxReleaseTimeout)
	}
	return nil
}
