package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/accentflow/internal/commands"
	"github.com/colonyops/accentflow/internal/core/config"
	"github.com/colonyops/accentflow/internal/core/eventbus"
	"github.com/colonyops/accentflow/internal/core/logging"
	"github.com/colonyops/accentflow/internal/core/styles"
	"github.com/colonyops/accentflow/internal/printer"
	"github.com/colonyops/accentflow/internal/profiler"
	"github.com/colonyops/accentflow/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		busCancel context.CancelFunc
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "accentflow",
		Usage:     "Type accented letters by holding Alt",
		UsageText: "accentflow [global options] [file] | command [command options]",
		Description: `accentflow is a terminal editor for accented text without dead keys.

Hold Alt and press a letter: the first accented variant appears in place and
a picker shows the rest. Press the letter again to cycle; release Alt (or
type anything else) to keep the highlighted variant.

Run 'accentflow [file]' to open the editor.
Run 'accentflow table' to list the configured variants.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ACCENTFLOW_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (empty logs to stderr)",
				Sources:     cli.EnvVars("ACCENTFLOW_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ACCENTFLOW_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.IntFlag{
				Name:        "profiler-port",
				Usage:       "serve pprof and event counters on 127.0.0.1:<port>",
				Sources:     cli.EnvVars("ACCENTFLOW_PROFILER_PORT"),
				Hidden:      true,
				Destination: &flags.ProfilerPort,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			// An invalid config does not stop validate, doctor or init;
			// commands that need it call flags.LoadedConfig.
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				log.Warn().Err(err).Str("path", flags.ConfigPath).Msg("config not loaded")
				flags.ConfigErr = err
				d := config.DefaultConfig()
				cfg = &d
			}
			flags.Config = cfg

			// Validation ensures the name is known; defaults otherwise.
			if palette, ok := styles.GetPalette(cfg.Theme); ok {
				styles.SetTheme(palette)
			}

			bus := eventbus.New(64)
			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			go bus.Start(busCtx)
			flags.Bus = bus

			if flags.ProfilerPort > 0 {
				server := profiler.New(flags.ProfilerPort, logging.Component("profiler"))
				server.Observe(bus)
				if err := server.Start(busCtx); err != nil {
					log.Warn().Err(err).Msg("profiler disabled")
				}
			}

			return printer.NewContext(ctx, printer.New(c.Root().Writer, c.Root().ErrWriter)), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if busCancel != nil {
				busCancel()
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	editCmd := commands.NewEditCmd(flags)

	app = editCmd.Register(app)
	app = commands.NewTableCmd(flags).Register(app)
	app = commands.NewReplayCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)
	app = commands.NewInitCmd(flags).Register(app)

	// Editor flags work on the root command too
	app.Flags = append(app.Flags, editCmd.Flags()...)

	// Open the editor when no subcommand is provided
	app.Action = editCmd.Run

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
