package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings. Printable keys are left to
// the candidate input.
type KeyMap struct {
	Check    key.Binding
	Compare  key.Binding
	NextAlgo key.Binding
	PrevAlgo key.Binding
	Explain  key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Check: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "check"),
		),
		Compare: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "all strategies"),
		),
		NextAlgo: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next strategy"),
		),
		PrevAlgo: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous strategy"),
		),
		Explain: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "toggle explanation"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Check, k.NextAlgo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Check, k.Compare, k.Clear},
		{k.NextAlgo, k.PrevAlgo, k.Explain},
		{k.Help, k.Quit},
	}
}
