package main

import "github.com/charmbracelet/lipgloss"

// Styles for plan and doctor output
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")). // Cyan
			MarginBottom(1)

	stepNameStyle = lipgloss.NewStyle().
			Bold(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray

	tolerateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
