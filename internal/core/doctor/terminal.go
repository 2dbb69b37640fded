package doctor

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/term"
)

// Package-level variables to allow test overrides.
var (
	isTerminalFunc = term.IsTerminal
	getenvFunc     = os.Getenv
	goos           = runtime.GOOS
)

// TerminalCheck reports whether the terminal can drive the editor: a TTY
// on stdin, a usable TERM, and multiplexer or emulator settings that
// affect Alt keys and focus events.
type TerminalCheck struct{}

// NewTerminalCheck creates a terminal check.
func NewTerminalCheck() *TerminalCheck {
	return &TerminalCheck{}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if isTerminalFunc(int(os.Stdin.Fd())) {
		result.Items = append(result.Items, CheckItem{Label: "TTY", Status: StatusPass, Detail: "stdin is a terminal"})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "TTY",
			Status: StatusFail,
			Detail: "stdin is not a terminal; the editor cannot start",
		})
	}

	switch t := getenvFunc("TERM"); t {
	case "", "dumb":
		result.Items = append(result.Items, CheckItem{
			Label:  "TERM",
			Status: StatusWarn,
			Detail: "unset or dumb; Alt keys and colors may not work",
		})
	default:
		result.Items = append(result.Items, CheckItem{Label: "TERM", Status: StatusPass, Detail: t})
	}

	if getenvFunc("TMUX") != "" {
		result.Items = append(result.Items, CheckItem{
			Label:  "tmux",
			Status: StatusWarn,
			Detail: "set 'focus-events on' so focus loss commits the active accent",
		})
	}

	if goos == "darwin" && getenvFunc("TERM_PROGRAM") == "Apple_Terminal" {
		result.Items = append(result.Items, CheckItem{
			Label:  "Option key",
			Status: StatusWarn,
			Detail: "enable 'Use Option as Meta key' in Terminal settings",
		})
	}

	return result
}
