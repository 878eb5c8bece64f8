package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type onboardingStep struct {
	icon  string
	title string
	body  string
	tip   string
}

var onboardingSteps = []onboardingStep{
	{
		icon:  "👥",
		title: "Smart Group Management",
		body:  "Create and join groups with customizable roles. Use @mentions to notify specific team members and organize conversations with threads.",
		tip:   "Open the info panel with ctrl+o to see who is in a channel.",
	},
	{
		icon:  "💬",
		title: "Real-Time Messaging",
		body:  "See who's online, who's typing, and receive instant notifications. Messages are delivered in real-time across all your devices.",
		tip:   "Add /self-destruct to a message and it disappears ten seconds later.",
	},
	{
		icon:  "🖼",
		title: "Multi-Media Sharing",
		body:  "Easily share images, videos, documents and links with your team. Preview files before downloading and organize media by type.",
		tip:   "Use the integrated drawing canvas (ctrl+g) for quick sketches and visual explanations.",
	},
	{
		icon:  "🔔",
		title: "Smart Notifications",
		body:  "Customize notifications for different groups and contacts. Priority tagging ensures you never miss important messages.",
		tip:   "Toggle dark mode with ctrl+t. Some say there is a secret code, too.",
	},
}

// onboardingModel is the welcome modal shown on first start.
type onboardingModel struct {
	step int
	open bool
}

func newOnboardingModel(open bool) onboardingModel {
	return onboardingModel{open: open}
}

func (m onboardingModel) Update(msg tea.KeyMsg) onboardingModel {
	switch msg.String() {
	case "right", "l", "tab":
		if m.step < len(onboardingSteps)-1 {
			m.step++
		}
	case "left", "h", "shift+tab":
		if m.step > 0 {
			m.step--
		}
	case "1", "2", "3", "4":
		m.step = int(msg.String()[0] - '1')
	case "enter":
		if m.step < len(onboardingSteps)-1 {
			m.step++
		} else {
			m.open = false
		}
	case "esc":
		m.open = false
	}
	return m
}

func (m onboardingModel) View(th theme, width int) string {
	boxWidth := 56
	if width > 0 && width-4 < boxWidth {
		boxWidth = width - 4
	}
	if boxWidth < 20 {
		boxWidth = 20
	}

	step := onboardingSteps[m.step]

	var tabs []string
	for i := range onboardingSteps {
		label := fmt.Sprintf(" %d ", i+1)
		if i == m.step {
			tabs = append(tabs, th.selected.Render(label))
		} else {
			tabs = append(tabs, th.muted.Render(label))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to ChatFlow") + "\n\n")
	b.WriteString(strings.Join(tabs, " ") + "\n\n")
	b.WriteString(step.icon + "  " + th.text.Bold(true).Render(step.title) + "\n\n")
	b.WriteString(th.muted.Render(wordwrap.String(step.body, boxWidth-4)) + "\n\n")
	b.WriteString(statusStyle.Render(wordwrap.String("Pro Tip: "+step.tip, boxWidth-4)) + "\n\n")

	action := "enter: next"
	if m.step == len(onboardingSteps)-1 {
		action = "enter: get started"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("←→/1-4: step • %s • esc: skip", action)))

	return modalStyle.
		BorderForeground(th.accent).
		Width(boxWidth).
		Align(lipgloss.Left).
		Render(b.String())
}
