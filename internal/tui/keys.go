package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the editor's own bindings. Everything else is text editing
// or accent input.
type KeyMap struct {
	Save      key.Binding
	Quit      key.Binding
	Suspend   key.Binding
	SelectAll key.Binding
	Help      key.Binding
	Accent    key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "suspend"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		// Display only; accent input is matched on KeyMsg.Alt.
		Accent: key.NewBinding(
			key.WithKeys("alt+e"),
			key.WithHelp("alt+letter", "cycle accents"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accent, k.Save, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Accent, k.SelectAll},
		{k.Save, k.Suspend},
		{k.Quit, k.Help},
	}
}
