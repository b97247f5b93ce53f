// Package theme holds the terminal styles shared by the quiz player.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
)

// Answer states
var (
	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Chosen = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Difficulty badges
var (
	Easy   = lipgloss.NewStyle().Foreground(Success)
	Medium = lipgloss.NewStyle().Foreground(Accent)
	Hard   = lipgloss.NewStyle().Foreground(Error)
)

// Timer states
var (
	TimerNormal  = lipgloss.NewStyle().Foreground(Text).Bold(true)
	TimerWarning = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	TimerExpired = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// DifficultyStyle returns the badge style for a difficulty label.
func DifficultyStyle(label string) lipgloss.Style {
	switch label {
	case "easy":
		return Easy
	case "hard":
		return Hard
	default:
		return Medium
	}
}
