// Package printer writes styled, line-oriented CLI output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/colonyops/accentflow/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines. Errors go to the error writer, everything
// else to the output writer.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a printer writing to out and errOut.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// NewContext stores p on ctx.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored on ctx, or one bound to stdout and stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Writer returns the output writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Successf writes a line prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, styles.SuccessStyle.Render("✔"), format, args...)
}

// Success writes a title with a muted detail.
func (p *Printer) Success(title, detail string) {
	p.line(p.out, styles.SuccessStyle.Render("✔"), "%s %s", title, styles.DividerStyle.Render(detail))
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, styles.InfoStyle.Render("●"), format, args...)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.out, styles.WarnStyle.Render("!"), format, args...)
}

// Errorf writes an error line to the error writer.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err, styles.ErrorStyle.Render("✘"), format, args...)
}

// CheckItem writes an indented passing item.
func (p *Printer) CheckItem(label, detail string) {
	p.item(styles.SuccessStyle.Render("✔"), label, detail)
}

// WarnItem writes an indented warning item.
func (p *Printer) WarnItem(label, detail string) {
	p.item(styles.WarnStyle.Render("●"), label, detail)
}

// FailItem writes an indented failing item.
func (p *Printer) FailItem(label, detail string) {
	p.item(styles.ErrorStyle.Render("✘"), label, detail)
}

func (p *Printer) item(icon, label, detail string) {
	if detail != "" {
		detail = " " + styles.DividerStyle.Render(detail)
	}
	fmt.Fprintf(p.out, "  %s %s%s\n", icon, label, detail)
}

// Section writes a header with an underline.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.out, styles.CommandHeaderStyle.Render(title))
	fmt.Fprintln(p.out, styles.DividerStyle.Render(strings.Repeat("─", max(len([]rune(title)), 3))))
}

func (p *Printer) line(w io.Writer, icon, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}
