package cycle

import "github.com/colonyops/accentflow/internal/core/accent"

// Action is the classifier's decision for a key-down event.
type Action int

const (
	ActionIgnore Action = iota
	ActionArm
	ActionStart
	ActionAdvance
	ActionAbort
)

func (a Action) String() string {
	switch a {
	case ActionIgnore:
		return "ignore"
	case ActionArm:
		return "arm"
	case ActionStart:
		return "start"
	case ActionAdvance:
		return "advance"
	case ActionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Classify decides what a key-down event means given the current cycle state.
// It never mutates anything.
//
// Whether the accent modifier is held is read from the event's modifier
// flags, which the host reports with every key.
func Classify(ev Event, st *State, tbl *accent.Table) Action {
	if ev.Key == KeyAccent {
		if ev.Mods.Without(ModAccent) == 0 {
			return ActionArm
		}
		return ActionIgnore
	}

	if !ev.Mods.Has(ModAccent) {
		return ActionAbort
	}

	// Shift is folded into the rune (e vs E); Ctrl and Meta are other chords.
	if ev.Mods.Has(ModCtrl) || ev.Mods.Has(ModMeta) {
		return ActionIgnore
	}
	if ev.Key != KeyRune || tbl == nil || !tbl.Has(ev.Rune) {
		return ActionIgnore
	}

	if active, ok := st.Active(); ok && active == ev.Rune {
		return ActionAdvance
	}
	return ActionStart
}
