// Package ui provides the visual styling for the teamforge interactive
// interface.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. VALORANT red against a dark slate background.
var (
	Primary     = lipgloss.Color("#ff4655")
	Foreground  = lipgloss.Color("#ece8e1")
	Muted       = lipgloss.Color("#768079")
	Border      = lipgloss.Color("#384b50")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Destructive = lipgloss.Color("#e53935")
)

// Styles holds the pre-built lipgloss styles used by the TUI.
type Styles struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Label        lipgloss.Style
	Selected     lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	Panel        lipgloss.Style
	SidebarTitle lipgloss.Style
	StatusBar    lipgloss.Style
}

// NewStyles builds the default style set.
func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(Foreground),
		Label: lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(Muted),
		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(Success),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		SidebarTitle: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(Muted),
	}
}
