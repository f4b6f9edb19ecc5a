package tui

import "github.com/charmbracelet/lipgloss"

// Styles used throughout the battle screen.
var (
	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	styleEnemyName = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	styleBossName = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("201"))

	styleTypedOK = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	styleTypedBad = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("124"))

	styleCursor = lipgloss.NewStyle().
			Underline(true).
			Bold(true)

	stylePending = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	styleTimerOK = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	styleTimerWarn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleTimerLow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleLogLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	styleVictory = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	styleDefeat = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	styleFled = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
