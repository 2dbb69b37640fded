package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/accentflow/internal/core/config"
	"github.com/colonyops/accentflow/internal/core/logging"
	"github.com/colonyops/accentflow/internal/tui"
	"github.com/colonyops/accentflow/pkg/logutils"
)

type EditCmd struct {
	flags   *Flags
	output  string
	print   bool
	noWatch bool
	title   string
}

// NewEditCmd creates the editor command.
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Flags returns the editor flags. They are registered on both the root
// command and the edit subcommand.
func (cmd *EditCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "file written on ctrl+s (defaults to the edited file)",
			Destination: &cmd.output,
		},
		&cli.BoolFlag{
			Name:        "print",
			Usage:       "print the buffer to stdout on exit",
			Destination: &cmd.print,
		},
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload the config file when it changes",
			Sources:     cli.EnvVars("ACCENTFLOW_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "header title (defaults to the file name)",
			Destination: &cmd.title,
		},
	}
}

func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Open the accent editor",
		UsageText: "accentflow edit [options] [file]",
		Description: `Opens a full-screen editor. Hold Alt (Option) and press a letter
repeatedly to cycle its accented variants; the highlighted variant is kept
when you type anything else, pause, or switch windows.

Text piped on stdin becomes the initial buffer.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})
	return app
}

// Run executes the editor. Exported for use as the default action.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.LoadedConfig()
	if err != nil {
		return err
	}

	file := c.Args().First()
	ctx = logging.WithFile(ctx, file)

	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	outTTY := term.IsTerminal(int(os.Stdout.Fd()))
	errTTY := term.IsTerminal(int(os.Stderr.Fd()))
	if !outTTY && !errTTY {
		return errors.New("accentflow edit requires a terminal")
	}

	var stdin io.Reader
	if !stdinTTY {
		stdin = os.Stdin
	}
	text, err := loadText(file, stdin)
	if err != nil {
		return err
	}

	output := cmd.output
	if output == "" {
		output = file
	}
	title := cmd.title
	if title == "" {
		title = file
	}

	// Stderr logs would draw over the editor; hold them until it exits.
	if cmd.flags.LogFile == "" {
		prev := log.Logger
		held, deferred := logutils.Defer(prev)
		log.Logger = held
		defer func() {
			log.Logger = prev
			_ = deferred.Flush(os.Stderr)
		}()
	}

	var reloads <-chan config.Reload
	if !cmd.noWatch && cmd.flags.ConfigPath != "" {
		w, err := config.NewWatcher(cmd.flags.ConfigPath, logging.Component("config-watcher"))
		if err != nil {
			log.Warn().Ctx(ctx).Err(err).Msg("config hot reload disabled")
		} else {
			defer func() { _ = w.Close() }()
			reloads = w.Changes()
		}
	}

	m, err := tui.New(tui.Options{
		Config:  cfg,
		Text:    text,
		Title:   title,
		Output:  output,
		Reloads: reloads,
		Bus:     cmd.flags.Bus,
		Logger:  logging.Component("editor"),
	})
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	}
	if !stdinTTY {
		opts = append(opts, tea.WithInputTTY())
	}
	if !outTTY {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}

	log.Info().Ctx(ctx).Msg("editor starting")
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	if cmd.print {
		if model, ok := final.(*tui.Model); ok {
			_, _ = fmt.Fprint(c.Root().Writer, model.Text())
		}
	}
	return nil
}

// loadText returns the initial buffer: the file's content when it exists,
// otherwise whatever stdin provides. A missing file starts empty and is
// created on save.
func loadText(file string, stdin io.Reader) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case err == nil:
			return string(data), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("read %s: %w", file, err)
		}
	}

	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", nil
}
