package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Gold      = lipgloss.Color("#EAB308") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)
)

// States
var (
	Unlocked = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	Completed = lipgloss.NewStyle().
			Foreground(Success)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Achievements
var (
	Badge = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	Points = lipgloss.NewStyle().
		Foreground(Accent)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)
)
