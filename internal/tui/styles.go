package tui

import "charm.land/lipgloss/v2"

var (
	primary   = lipgloss.Color("#6B50FF")
	secondary = lipgloss.Color("#FF60FF")
	muted     = lipgloss.Color("#858392")
	subtle    = lipgloss.Color("#3A3943")
	danger    = lipgloss.Color("#EB4268")
	success   = lipgloss.Color("#12C78F")
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(primary)
	countStyle    = lipgloss.NewStyle().Foreground(muted)
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(secondary)
	dishStyle     = lipgloss.NewStyle()
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)
	matchStyle    = lipgloss.NewStyle().Underline(true).Foreground(secondary)
	priceStyle    = lipgloss.NewStyle().Foreground(success)
	soldOutStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(muted)
	detailStyle   = lipgloss.NewStyle().Foreground(muted)
	statusStyle   = lipgloss.NewStyle().Foreground(muted)
	arrowStyle    = lipgloss.NewStyle().Foreground(primary)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	ruleStyle     = lipgloss.NewStyle().Foreground(subtle)
)
