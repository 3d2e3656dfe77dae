package tui

import "github.com/charmbracelet/lipgloss"

var (
	green  = lipgloss.Color("#10b981")
	red    = lipgloss.Color("#ef4444")
	amber  = lipgloss.Color("#f59e0b")
	muted  = lipgloss.Color("#8b8b8b")
	text   = lipgloss.Color("#e8e6e3")
	accent = lipgloss.Color("#d97757")
)

type theme struct {
	title      lipgloss.Style
	subtitle   lipgloss.Style
	sidebar    lipgloss.Style
	newChat    lipgloss.Style
	user       lipgloss.Style
	assistant  lipgloss.Style
	messageBox lipgloss.Style
	inputBox   lipgloss.Style
	banner     lipgloss.Style
	notice     lipgloss.Style
	help       lipgloss.Style
	statusDot  map[string]lipgloss.Style
}

func newTheme() theme {
	return theme{
		title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(muted),
		sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(muted).
			Padding(0, 1),
		newChat: lipgloss.NewStyle().
			Foreground(text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		user:      lipgloss.NewStyle().Foreground(green).Bold(true),
		assistant: lipgloss.NewStyle().Foreground(accent).Bold(true),
		messageBox: lipgloss.NewStyle().
			Foreground(text).
			PaddingLeft(2),
		inputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted),
		banner: lipgloss.NewStyle().
			Foreground(red).
			Border(lipgloss.NormalBorder()).
			BorderForeground(red).
			Padding(0, 1),
		notice: lipgloss.NewStyle().
			Foreground(text).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(amber).
			Padding(1, 2),
		help: lipgloss.NewStyle().Foreground(muted),
		statusDot: map[string]lipgloss.Style{
			"connected": lipgloss.NewStyle().Foreground(green),
			"error":     lipgloss.NewStyle().Foreground(red),
			"checking":  lipgloss.NewStyle().Foreground(amber),
		},
	}
}
