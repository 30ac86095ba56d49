package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#06B6D4") // Cyan
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Warning   = lipgloss.Color("#FB923C") // Orange
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Divider = lipgloss.NewStyle().
		Foreground(Border)
)

// Answer feedback
var (
	Option = lipgloss.NewStyle().
		Foreground(Text)

	OptionKey = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Power-ups
var (
	PowerUpReady = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	PowerUpActive = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(BgDark).
			Bold(true)

	PowerUpCooling = lipgloss.NewStyle().
			Foreground(TextDim)

	PowerUpSpent = lipgloss.NewStyle().
			Foreground(Border).
			Strikethrough(true)
)

// HUD
var (
	Score = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Lives = lipgloss.NewStyle().
		Foreground(Error)

	TimerOK = lipgloss.NewStyle().
		Background(Secondary)

	TimerLow = lipgloss.NewStyle().
			Background(Warning)

	TimerFrozen = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
