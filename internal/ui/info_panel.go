package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/saravenpi/chatflow/internal/models"
	"github.com/saravenpi/chatflow/internal/roster"
)

const infoPanelWidth = 34

type infoPanel struct {
	channel        models.Channel
	members        []models.Member
	shared         []models.SharedItem
	roster         *roster.Roster
	avatarEndpoint string
	now            time.Time
}

func statusDot(status models.MemberStatus) string {
	color := lipgloss.Color("245")
	switch status {
	case models.StatusOnline:
		color = lipgloss.Color("42")
	case models.StatusAway:
		color = lipgloss.Color("220")
	case models.StatusDND:
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

func roleBadge(role models.MemberRole) string {
	switch role {
	case models.RoleAdmin:
		return " 👑 admin"
	case models.RoleGuest:
		return " guest"
	default:
		return ""
	}
}

// channelMembers returns the peer of a direct channel or the whole roster.
func channelMembers(r *roster.Roster, ch models.Channel) []models.Member {
	if ch.Type == models.ChannelDirect {
		if m, ok := r.Find(ch.ID); ok {
			return []models.Member{m}
		}
	}
	return r.Members()
}

func (p infoPanel) View(th theme, height int) string {
	inner := infoPanelWidth - 4
	clip := func(s string) string { return truncate.StringWithTail(s, uint(inner), "…") }

	var b strings.Builder
	b.WriteString(titleStyle.Render("Info") + "\n")
	b.WriteString(th.muted.Render(clip(fmt.Sprintf("%s%s • %s", channelPrefix(p.channel.Type), p.channel.Name, p.channel.Type.Label()))) + "\n")

	if p.channel.Type == models.ChannelDirect && len(p.members) == 1 {
		m := p.members[0]
		avatar := roster.AvatarURL(p.avatarEndpoint, models.Sender{ID: m.ID, Name: m.Name})
		b.WriteString(th.muted.Render(wrap.String(avatar, inner)) + "\n")
	}

	b.WriteString("\n" + inputStyle.Render(fmt.Sprintf("%d Members", len(p.members))))
	if p.roster != nil && p.channel.Type != models.ChannelDirect {
		b.WriteString(th.muted.Render(fmt.Sprintf(" • %d online", p.roster.CountByStatus(models.StatusOnline))))
	}
	b.WriteString("\n")
	for _, m := range p.members {
		b.WriteString(clip(fmt.Sprintf("%s %s%s", statusDot(m.Status), m.Name, roleBadge(m.Role))) + "\n")
	}

	var media, files []models.SharedItem
	for _, item := range p.shared {
		if item.Type == models.AttachmentImage {
			media = append(media, item)
		} else {
			files = append(files, item)
		}
	}

	writeItems := func(title string, items []models.SharedItem) {
		b.WriteString("\n" + inputStyle.Render(title) + "\n")
		if len(items) == 0 {
			b.WriteString(th.muted.Render("Nothing shared yet") + "\n")
			return
		}
		for _, item := range items {
			b.WriteString(clip(formatAttachment(models.Attachment{Type: item.Type, URL: item.URL, Name: item.Name})) + "\n")
			by := item.AddedBy
			if p.roster != nil {
				if name := p.roster.Name(item.AddedBy); name != "" {
					by = name
				}
			}
			b.WriteString(th.muted.Render(clip(fmt.Sprintf("  %s • %s", by, humanize.RelTime(item.Date, p.now, "ago", "from now")))) + "\n")
		}
	}
	writeItems("Shared Media", media)
	writeItems("Files & Links", files)

	b.WriteString("\n" + helpStyle.Render("ctrl+o: close"))

	return th.panel.
		Width(infoPanelWidth - 2).
		Height(height - 2).
		MaxHeight(height).
		Padding(0, 1).
		Render(b.String())
}
