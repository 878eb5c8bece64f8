package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"github.com/saravenpi/chatflow/internal/models"
)

type renderOptions struct {
	width             int
	selfID            string
	selected          int
	theme             theme
	now               time.Time
	selfDestructDelay time.Duration
}

// renderMessages lays out the message list for the viewport. It also returns
// the line each message starts on so the selection can be scrolled into view.
func renderMessages(messages []models.Message, opts renderOptions) (string, []int) {
	width := opts.width
	if width <= 0 {
		width = 80
	}

	var content strings.Builder
	starts := make([]int, len(messages))
	line := 0

	for i, message := range messages {
		if i > 0 {
			content.WriteString("\n")
			line++
		}
		starts[i] = line

		showHeader := i == 0 || messages[i-1].Sender.ID != message.Sender.ID ||
			messages[i-1].IsTyping
		block := renderMessage(message, showHeader, width, opts)

		if i == opts.selected {
			block = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(opts.theme.accent).
				Render(block)
		}

		content.WriteString(block)
		line += strings.Count(block, "\n") + 1
	}

	return content.String(), starts
}

func renderMessage(message models.Message, showHeader bool, width int, opts renderOptions) string {
	th := opts.theme
	mine := message.Sender.ID == opts.selfID

	if message.IsTyping {
		return th.muted.Render(fmt.Sprintf("● ● ● %s is typing...", message.Sender.Name))
	}

	var lines []string

	if showHeader {
		name := message.Sender.Name
		if mine {
			name = "You"
		}
		if message.IsAdmin {
			name += " 👑"
		}
		lines = append(lines, messageHeaderStyle.Render(fmt.Sprintf("%s • %s", name, formatTimestamp(message.Timestamp, opts.now))))
	}

	bodyStyle := th.other
	if mine {
		bodyStyle = th.own
	}
	if message.Content != "" {
		lines = append(lines, bodyStyle.Render(wordwrap.String(message.Content, width-10)))
	}

	for _, a := range message.Attachments {
		lines = append(lines, th.muted.Render(formatAttachment(a)))
	}

	if len(message.Reactions) > 0 {
		var reactions []string
		for _, r := range message.Reactions {
			reactions = append(reactions, fmt.Sprintf("%s %d", r.Emoji, r.Count))
		}
		lines = append(lines, statusStyle.Render(strings.Join(reactions, "  ")))
	}

	if message.SelfDestruct {
		lines = append(lines, burningStyle.Render(fmt.Sprintf("🔥 Self-destructing in %s", opts.selfDestructDelay)))
	}

	block := strings.Join(lines, "\n")
	if mine {
		block = lipgloss.NewStyle().Align(lipgloss.Right).Width(width - 2).Render(block)
	}
	return block
}

func formatAttachment(a models.Attachment) string {
	switch a.Type {
	case models.AttachmentImage:
		return fmt.Sprintf("🖼  %s (%s)", a.Name, a.URL)
	case models.AttachmentLink:
		return fmt.Sprintf("🔗 %s (%s)", a.Name, a.URL)
	default:
		return fmt.Sprintf("📎 %s", a.Name)
	}
}

// formatTimestamp shows the clock time for today's messages and a relative
// time for older ones.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	if now.Sub(t) < 24*time.Hour {
		return t.Format("3:04 PM")
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
