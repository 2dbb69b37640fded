package cycle

// ModifierTracker records whether the accent modifier is held, independent
// of any letter key.
type ModifierTracker struct {
	armed bool
}

// Press arms the tracker when the accent modifier went down on its own.
// Any other modifier in mods leaves the tracker untouched. It reports
// whether the armed flag changed.
func (m *ModifierTracker) Press(mods Modifiers) bool {
	if mods.Without(ModAccent) != 0 {
		return false
	}
	changed := !m.armed
	m.armed = true
	return changed
}

// Release disarms the tracker and reports whether the flag changed.
func (m *ModifierTracker) Release() bool {
	changed := m.armed
	m.armed = false
	return changed
}

// Armed reports whether the accent modifier is held.
func (m *ModifierTracker) Armed() bool {
	return m.armed
}
