package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles of the terminal viewer. Colors are ANSI
// 256-color codes.
type Theme struct {
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Section   lipgloss.Style
	Text      lipgloss.Style
	Faint     lipgloss.Style
	Error     lipgloss.Style
	Done      lipgloss.Style
	Focused   lipgloss.Style
	Unfocused lipgloss.Style
}

var DefaultTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
	Heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
	Section:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).MarginTop(1),
	Text:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	Done:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Unfocused: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}
