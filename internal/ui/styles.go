package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/chatflow/internal/chat"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	messageHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117")).
			Bold(true)

	burningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("42")).
			Padding(0, 1)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5"))
)

// theme is derived from the session's presentation flags on every render;
// the UI never writes the flags back.
type theme struct {
	name     string
	accent   lipgloss.Color
	border   lipgloss.Color
	text     lipgloss.Style
	muted    lipgloss.Style
	own      lipgloss.Style
	other    lipgloss.Style
	selected lipgloss.Style
	panel    lipgloss.Style
}

func newTheme(p chat.Presentation) theme {
	switch {
	case p.RetroMode:
		green := lipgloss.Color("46")
		return theme{
			name:     "retro",
			accent:   green,
			border:   green,
			text:     lipgloss.NewStyle().Foreground(green),
			muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			own:      lipgloss.NewStyle().Foreground(green).Border(lipgloss.NormalBorder()).BorderForeground(green),
			other:    lipgloss.NewStyle().Foreground(green).Border(lipgloss.NormalBorder()).BorderForeground(green),
			selected: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(green),
			panel:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(green),
		}
	case p.DarkMode:
		return theme{
			name:     "dark",
			accent:   lipgloss.Color("42"),
			border:   lipgloss.Color("238"),
			text:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
			own:      lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
			other:    lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
			selected: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
		}
	default:
		return theme{
			name:     "light",
			accent:   lipgloss.Color("5"),
			border:   lipgloss.Color("250"),
			text:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			own:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
			other:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
			selected: lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
			panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")),
		}
	}
}
