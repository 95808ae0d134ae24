// FILENAME: internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/xkilldash9x/round-table/internal/config"
)

var (
	// -- Components --

	// Panels
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(config.ColorSub).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Background(config.ColorFocus).
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 1)

	// Status Bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("234")).
			Background(config.ColorSub)

	statusText = lipgloss.NewStyle().
			Inherit(statusBarStyle).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().Foreground(config.ColorErr).Bold(true)
)

// stateStyle colors the status bar badge.
func stateStyle(s State) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("234"))
	switch s {
	case StateDining:
		return st.Background(config.ColorOk)
	case StateFinished:
		return st.Background(config.ColorFocus)
	case StateFailed:
		return st.Background(config.ColorErr)
	default:
		return st.Background(config.ColorWarn)
	}
}
