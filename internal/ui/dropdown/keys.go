package dropdown

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the key bindings of a dropdown
type KeyMap struct {
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Close  key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "open/select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev"),
		),
	}
}

// Override replaces the keys of the selection bindings. Empty lists keep
// the current keys.
func (k *KeyMap) Override(toggle, up, down, closeKeys []string) {
	if len(toggle) > 0 {
		k.Toggle.SetKeys(toggle...)
	}
	if len(up) > 0 {
		k.Up.SetKeys(up...)
	}
	if len(down) > 0 {
		k.Down.SetKeys(down...)
	}
	if len(closeKeys) > 0 {
		k.Close.SetKeys(closeKeys...)
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Up, k.Down, k.Close}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Close},
		{k.Up, k.Down},
		{k.Next, k.Prev},
	}
}

// code translates a key message into the key code the controller understands
func (k KeyMap) code(msg tea.KeyMsg) (KeyCode, bool) {
	switch {
	case key.Matches(msg, k.Toggle):
		if msg.Type == tea.KeySpace {
			return KeySpace, true
		}
		return KeyEnter, true
	case key.Matches(msg, k.Up):
		return KeyArrowUp, true
	case key.Matches(msg, k.Down):
		return KeyArrowDown, true
	case key.Matches(msg, k.Close):
		return KeyEscape, true
	}
	return "", false
}
