package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/accentflow/internal/core/logging"
	"github.com/colonyops/accentflow/internal/core/replay"
	"github.com/colonyops/accentflow/internal/printer"
	"github.com/colonyops/accentflow/pkg/iojson"
)

type ReplayCmd struct {
	flags   *Flags
	format  string
	verbose bool
}

// NewReplayCmd creates the replay command.
func NewReplayCmd(flags *Flags) *ReplayCmd {
	return &ReplayCmd{flags: flags}
}

func (cmd *ReplayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "replay",
		Usage:     "Run scripted key sequences against the accent controller",
		UsageText: "accentflow replay [options] <glob>...",
		Description: `Runs YAML replay scripts headlessly and checks the final text and
status. Globs support ** (e.g. 'scripts/**/*.yaml'). Exits 1 when any
script fails.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "print every step",
				Destination: &cmd.verbose,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ReplayCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return errors.New("at least one script glob is required")
	}

	scripts, err := replay.LoadScripts(c.Args().Slice()...)
	if err != nil {
		return err
	}

	cfg, err := cmd.flags.LoadedConfig()
	if err != nil {
		return err
	}
	tbl, err := cfg.Table()
	if err != nil {
		return fmt.Errorf("build accent table: %w", err)
	}

	runner := replay.NewRunner(tbl, cmd.flags.Bus, logging.Component("replay"))
	results := runner.RunAll(ctx, scripts)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}
	return cmd.outputText(printer.Ctx(ctx), results)
}

func (cmd *ReplayCmd) outputJSON(c *cli.Command, results []replay.Result) error {
	passed, failed := replay.Summary(results)

	out := struct {
		Passed  int             `json:"passed"`
		Failed  int             `json:"failed"`
		Results []replay.Result `json:"results"`
	}{
		Passed:  passed,
		Failed:  failed,
		Results: results,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ReplayCmd) outputText(p *printer.Printer, results []replay.Result) error {
	p.Section("Replay")

	for _, res := range results {
		label := res.Name
		if res.Path != "" {
			label += " " + res.Path
		}
		if res.Passed() {
			p.CheckItem(label, "")
		} else {
			p.FailItem(label, "")
			for _, f := range res.Failures {
				p.Printf("      %s", f)
			}
		}

		if cmd.verbose {
			for _, st := range res.Steps {
				consumed := ""
				if st.Consumed {
					consumed = " (consumed)"
				}
				p.Printf("      %2d %-24s %s%s", st.Step, st.Event, st.Action, consumed)
			}
		}
	}

	passed, failed := replay.Summary(results)
	p.Printf("")
	if failed == 0 {
		p.Successf("%d passed", passed)
		return nil
	}
	p.Errorf("%d passed, %d failed", passed, failed)
	return cli.Exit("", 1)
}
