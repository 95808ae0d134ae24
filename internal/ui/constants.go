// FILENAME: internal/ui/constants.go
package ui

import "github.com/charmbracelet/bubbles/key"

// State represents the dashboard's global state.
type State int

const (
	StateDining State = iota
	StateFinished
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDining:
		return "DINING"
	case StateFinished:
		return "DONE"
	case StateFailed:
		return "STALLED"
	default:
		return "UNKNOWN"
	}
}

// KeyMap defines the keybindings for the dashboard.
type KeyMap struct {
	Up, Down key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}
