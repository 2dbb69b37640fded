package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/accentflow/internal/core/accent"
	"github.com/colonyops/accentflow/internal/core/styles"
)

type TableCmd struct {
	flags  *Flags
	format string
}

// NewTableCmd creates the table command.
func NewTableCmd(flags *Flags) *TableCmd {
	return &TableCmd{flags: flags}
}

func (cmd *TableCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "table",
		Usage:     "Print the active accent table",
		UsageText: "accentflow table [options] [letter...]",
		Description: `Prints every base letter with its variants in cycle order, after
merging the config file with the built-in table. Pass letters to show
only those rows.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, markdown, yaml)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		ShellComplete: BaseLetterCompleter(cmd.flags),
		Action:        cmd.run,
	})
	return app
}

func (cmd *TableCmd) run(_ context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.LoadedConfig()
	if err != nil {
		return err
	}
	tbl, err := cfg.Table()
	if err != nil {
		return fmt.Errorf("build accent table: %w", err)
	}

	bases, err := selectBases(tbl, c.Args().Slice())
	if err != nil {
		return err
	}

	return writeTable(c.Root().Writer, tbl, bases, cmd.format)
}

// selectBases returns the requested letters in table order, or every
// letter when none are requested.
func selectBases(tbl *accent.Table, args []string) ([]rune, error) {
	if len(args) == 0 {
		return tbl.Bases(), nil
	}

	want := make(map[rune]bool, len(args))
	for _, a := range args {
		if utf8.RuneCountInString(a) != 1 {
			return nil, fmt.Errorf("%q is not a single letter", a)
		}
		r, _ := utf8.DecodeRuneInString(a)
		if !tbl.Has(r) {
			return nil, fmt.Errorf("no variants for %q", a)
		}
		want[r] = true
	}

	var out []rune
	for _, b := range tbl.Bases() {
		if want[b] {
			out = append(out, b)
		}
	}
	return out, nil
}

func writeTable(w io.Writer, tbl *accent.Table, bases []rune, format string) error {
	switch format {
	case "text":
		_, err := fmt.Fprintln(w, textTable(tbl, bases))
		return err
	case "markdown":
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle()),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("create markdown renderer: %w", err)
		}
		out, err := r.Render(markdownTable(tbl, bases))
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	case "yaml":
		m := make(map[string][]string, len(bases))
		for _, b := range bases {
			vs, _ := tbl.Variants(b)
			m[string(b)] = vs
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"accents": m}); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or yaml)", format)
	}
}

func textTable(tbl *accent.Table, bases []rune) string {
	rows := make([][]string, 0, len(bases))
	for _, b := range bases {
		vs, _ := tbl.Variants(b)
		rows = append(rows, []string{string(b), strings.Join(vs, " "), strconv.Itoa(len(vs))})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBaseStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeaderStyle
			}
			return styles.TableCellStyle
		}).
		Headers("Letter", "Variants", "Count").
		Rows(rows...).
		String()
}

func markdownTable(tbl *accent.Table, bases []rune) string {
	var sb strings.Builder
	sb.WriteString("# Accent table\n\n")
	sb.WriteString("| Letter | Variants | Count |\n")
	sb.WriteString("|:------:|----------|------:|\n")
	for _, b := range bases {
		vs, _ := tbl.Variants(b)
		fmt.Fprintf(&sb, "| `%c` | %s | %d |\n", b, strings.Join(vs, " "), len(vs))
	}
	return sb.String()
}
