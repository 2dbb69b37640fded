package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/accentflow/internal/core/config"
	"github.com/colonyops/accentflow/internal/printer"
	"github.com/colonyops/accentflow/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "accentflow config validate [options]",
				Description: "Validates the configuration file: theme, timing, status labels and every accent mapping.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	result := validateConfig(cmd.flags.ConfigPath)

	if cmd.format == "json" {
		return cmd.outputJSON(c, result)
	}

	return cmd.outputText(printer.Ctx(ctx), result)
}

// validateConfig reads the file without rejecting it so every problem is
// reported, not just the first.
func validateConfig(path string) *config.ValidationResult {
	cfg, err := config.Read(path)
	if err != nil {
		return &config.ValidationResult{
			Errors: []config.ValidationError{{
				Category: "Config file",
				Item:     path,
				Message:  err.Error(),
				Fix:      "check the YAML syntax",
			}},
		}
	}
	return cfg.ValidateDeep(path)
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, result *config.ValidationResult) error {
	out := struct {
		Valid    bool                       `json:"valid"`
		Errors   []config.ValidationError   `json:"errors,omitempty"`
		Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		Checks   []config.ValidationCheck   `json:"checks,omitempty"`
	}{
		Valid:    result.IsValid(),
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Checks:   result.Checks,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}
	if !result.IsValid() {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, result *config.ValidationResult) error {
	for _, check := range result.Checks {
		p.Successf("%s: %s", check.Category, check.Message)
		for _, detail := range check.Details {
			p.Printf("  %s", detail)
		}
	}

	for _, warn := range result.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, err := range result.Errors {
		p.Errorf("%s: %s", err.Category, err.Message)
		if err.Item != "" {
			p.Printf("  Item: %s", err.Item)
		}
		if err.Fix != "" {
			p.Printf("  Fix: %s", err.Fix)
		}
	}

	p.Printf("")
	if result.IsValid() {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", result.ErrorCount())
	return cli.Exit("", 1)
}
