package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme collects the lipgloss styles used by the desk views
type Theme struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	TableBorder lipgloss.Style
	StatusBar   lipgloss.Style
	Notice      lipgloss.Style
	ErrorNotice lipgloss.Style
	FormLabel   lipgloss.Style
	FormTitle   lipgloss.Style
	Help        lipgloss.Style
}

// DefaultTheme returns the standard color scheme
func DefaultTheme() Theme {
	return Theme{
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2).
			Border(lipgloss.HiddenBorder(), true),
		TableBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		ErrorNotice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		FormLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14),
		FormTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
