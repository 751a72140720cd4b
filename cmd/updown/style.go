package main

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primary = lipgloss.Color("#7C3AED")
	green   = lipgloss.Color("#10B981")
	red     = lipgloss.Color("#EF4444")
	dim     = lipgloss.Color("#6B7280")
	white   = lipgloss.Color("#F9FAFB")

	bannerStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)
	boldStyle      = lipgloss.NewStyle().Bold(true).Foreground(white)
	healthyStyle   = lipgloss.NewStyle().Foreground(green).Bold(true)
	unhealthyStyle = lipgloss.NewStyle().Foreground(red).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(dim)

	keyStyle = lipgloss.NewStyle().Foreground(dim).Width(16)
	valStyle = lipgloss.NewStyle().Foreground(white)

	errorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(red).
			Foreground(red).
			Padding(0, 1).
			MarginTop(1)

	successBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(green).
			Foreground(green).
			Padding(0, 1).
			MarginTop(1)
)

func statusDot(healthy bool) string {
	if healthy {
		return healthyStyle.Render("●")
	}
	return unhealthyStyle.Render("●")
}

func kv(key, val string) string {
	return keyStyle.Render(key) + valStyle.Render(val)
}
