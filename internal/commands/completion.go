package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

// BaseLetterCompleter returns a ShellCompleteFunc that suggests the base
// letters of the active accent table as positional completions, skipping
// letters already on the command line.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func BaseLetterCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		args := cmd.Args().Slice()
		if len(args) > 0 {
			last := args[len(args)-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		cfg, err := flags.LoadedConfig()
		if err != nil {
			return
		}
		tbl, err := cfg.Table()
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, base := range tbl.Bases() {
			if slices.Contains(args, string(base)) {
				continue
			}
			_, _ = fmt.Fprintln(w, string(base))
		}
	}
}
