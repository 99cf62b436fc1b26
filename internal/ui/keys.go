package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the navtoggle UI.
type KeyMap struct {
	Toggle  key.Binding
	Confirm key.Binding
	Deny    key.Binding
	Quit    key.Binding
}

// NewKeyMap returns the bindings with toggleKey as the navigation toggle.
func NewKeyMap(toggleKey string) *KeyMap {
	return &KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(toggleKey),
			key.WithHelp(toggleKey, "toggle navigation"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Quit}
}
