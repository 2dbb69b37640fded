package tui

import (
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/accentflow/internal/core/cycle"
	"github.com/colonyops/accentflow/internal/core/surface"
)

// releaseTickMsg fires when no Alt+key arrived for the release timeout.
// Only the tick matching the latest sequence number releases the modifier.
type releaseTickMsg struct {
	seq int
}

func releaseTick(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return releaseTickMsg{seq: seq}
	})
}

// accentKey reports the rune of an Alt+letter press.
func accentKey(msg tea.KeyMsg) (rune, bool) {
	if !msg.Alt || msg.Paste || msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	return msg.Runes[0], true
}

// keyEvent converts a non-accent key press into a core event. Terminals
// do not report modifiers on printable runes, so shift is inferred from
// case.
func keyEvent(msg tea.KeyMsg) cycle.Event {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return cycle.KeyDown(msg.Runes[0], shiftFor(msg.Runes[0]))
		}
	case tea.KeySpace:
		return cycle.KeyDown(' ', 0)
	case tea.KeyShiftLeft, tea.KeyShiftRight, tea.KeyShiftUp, tea.KeyShiftDown,
		tea.KeyShiftHome, tea.KeyShiftEnd:
		return cycle.Event{Kind: cycle.EventKeyDown, Key: cycle.KeyOther, Mods: cycle.ModShift}
	case tea.KeyEnter, tea.KeyTab, tea.KeyEsc, tea.KeyBackspace:
	default:
		if msg.Type >= tea.KeyCtrlAt && msg.Type <= tea.KeyCtrlUnderscore {
			return cycle.Event{Kind: cycle.EventKeyDown, Key: cycle.KeyOther, Mods: cycle.ModCtrl}
		}
	}
	return cycle.Event{Kind: cycle.EventKeyDown, Key: cycle.KeyOther}
}

func shiftFor(r rune) cycle.Modifiers {
	if unicode.IsUpper(r) {
		return cycle.ModShift
	}
	return 0
}

// applyEdit performs ordinary text editing for a key the controller did not
// consume. It reports whether the key was an editing key.
func applyEdit(buf *surface.Buffer, msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		buf.InsertText(string(msg.Runes))
	case tea.KeySpace:
		buf.InsertText(" ")
	case tea.KeyEnter:
		buf.InsertText("\n")
	case tea.KeyBackspace:
		buf.Backspace()
	case tea.KeyDelete:
		buf.DeleteForward()
	case tea.KeyLeft:
		buf.MoveLeft(false)
	case tea.KeyRight:
		buf.MoveRight(false)
	case tea.KeyUp:
		buf.MoveUp(false)
	case tea.KeyDown:
		buf.MoveDown(false)
	case tea.KeyHome:
		buf.LineStart(false)
	case tea.KeyEnd:
		buf.LineEnd(false)
	case tea.KeyShiftLeft:
		buf.MoveLeft(true)
	case tea.KeyShiftRight:
		buf.MoveRight(true)
	case tea.KeyShiftUp:
		buf.MoveUp(true)
	case tea.KeyShiftDown:
		buf.MoveDown(true)
	case tea.KeyShiftHome:
		buf.LineStart(true)
	case tea.KeyShiftEnd:
		buf.LineEnd(true)
	default:
		return false
	}
	return true
}
