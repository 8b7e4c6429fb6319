package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal viewer.
type KeyMap struct {
	// Login form.
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding

	// Project screen: move to a neighbouring project id.
	NextProject key.Binding
	PrevProject key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "sign in"),
	),
	NextProject: key.NewBinding(
		key.WithKeys("]", "n"),
		key.WithHelp("]", "next project"),
	),
	PrevProject: key.NewBinding(
		key.WithKeys("[", "p"),
		key.WithHelp("[", "previous project"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}
