package main

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the text renderer.
const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	fieldStyle   = lipgloss.NewStyle().Bold(true)
	indexStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	messageStyle = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	pathStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)
