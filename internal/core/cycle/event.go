package cycle

import "strings"

// EventKind identifies the input notification being dispatched.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventFocusLost
	EventVisibility
)

func (k EventKind) String() string {
	switch k {
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventFocusLost:
		return "focus-lost"
	case EventVisibility:
		return "visibility"
	default:
		return "unknown"
	}
}

// Key is the identity of the pressed key. Printable keys use KeyRune and
// carry the character in Event.Rune.
type Key int

const (
	KeyRune Key = iota
	KeyAccent
	KeyShift
	KeyCtrl
	KeyMeta
	KeyOther
)

func (k Key) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyAccent:
		return "accent"
	case KeyShift:
		return "shift"
	case KeyCtrl:
		return "ctrl"
	case KeyMeta:
		return "meta"
	default:
		return "other"
	}
}

// Modifiers is the set of modifier keys held when an event was produced.
type Modifiers uint8

const (
	ModAccent Modifiers = 1 << iota
	ModShift
	ModCtrl
	ModMeta
)

// Has reports whether all bits in f are set.
func (m Modifiers) Has(f Modifiers) bool {
	return m&f == f
}

// Without returns m with the bits in f cleared.
func (m Modifiers) Without(f Modifiers) Modifiers {
	return m &^ f
}

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, p := range []struct {
		f    Modifiers
		name string
	}{
		{ModAccent, "accent"},
		{ModShift, "shift"},
		{ModCtrl, "ctrl"},
		{ModMeta, "meta"},
	} {
		if m.Has(p.f) {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "+")
}

// Event is a single notification from the host input source.
type Event struct {
	Kind   EventKind
	Key    Key
	Rune   rune
	Mods   Modifiers
	Hidden bool // EventVisibility only
}

// KeyDown builds a key-down event for a printable character.
func KeyDown(r rune, mods Modifiers) Event {
	return Event{Kind: EventKeyDown, Key: KeyRune, Rune: r, Mods: mods}
}

// KeyUp builds a key-up event for a printable character.
func KeyUp(r rune, mods Modifiers) Event {
	return Event{Kind: EventKeyUp, Key: KeyRune, Rune: r, Mods: mods}
}

// AccentDown builds the key-down event of the accent modifier itself.
// The accent bit is always part of the reported modifiers.
func AccentDown(mods Modifiers) Event {
	return Event{Kind: EventKeyDown, Key: KeyAccent, Mods: mods | ModAccent}
}

// AccentUp builds the key-up event of the accent modifier.
func AccentUp() Event {
	return Event{Kind: EventKeyUp, Key: KeyAccent}
}

// FocusLost builds a focus-lost notification.
func FocusLost() Event {
	return Event{Kind: EventFocusLost}
}

// Visibility builds a visibility-change notification.
func Visibility(hidden bool) Event {
	return Event{Kind: EventVisibility, Hidden: hidden}
}

// Result reports how an event was handled.
type Result struct {
	Action Action
	// Consumed events must not reach the text surface as literal input.
	Consumed bool
}
