package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"sportspack/internal/domain"
)

var (
	primary   = lipgloss.Color("#7C3AED") // Purple
	secondary = lipgloss.Color("#10B981") // Green
	muted     = lipgloss.Color("#6B7280") // Gray
	warning   = lipgloss.Color("#F59E0B") // Amber
	errColor  = lipgloss.Color("#EF4444") // Red

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	labelStyle = lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	inheritedStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(secondary)

	warningStyle = lipgloss.NewStyle().
			Foreground(warning)

	errorStyle = lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true)

	// Tree node styles by hierarchy level
	nodeCategory = lipgloss.NewStyle().
			Bold(true)

	nodeGrouping = lipgloss.NewStyle().
			Foreground(secondary)

	nodeItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue
)

func levelStyle(level int) lipgloss.Style {
	switch level {
	case domain.LevelCategory:
		return nodeCategory
	case domain.LevelGrouping:
		return nodeGrouping
	case domain.LevelItem:
		return nodeItem
	default:
		return mutedStyle
	}
}
