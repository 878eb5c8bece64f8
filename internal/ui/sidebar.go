package ui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/chatflow/internal/models"
)

type channelItem struct {
	channel models.Channel
}

func (i channelItem) Title() string {
	return channelPrefix(i.channel.Type) + i.channel.Name
}

func (i channelItem) Description() string {
	if i.channel.Unread > 0 {
		return fmt.Sprintf("%s • %d unread", i.channel.Type.Label(), i.channel.Unread)
	}
	return i.channel.Type.Label()
}

func (i channelItem) FilterValue() string {
	return i.channel.Name
}

func channelPrefix(t models.ChannelType) string {
	switch t {
	case models.ChannelDirect:
		return "@ "
	case models.ChannelGroup:
		return "👥 "
	default:
		return "# "
	}
}

func groupRank(t models.ChannelType) int {
	switch t {
	case models.ChannelPublic:
		return 0
	case models.ChannelDirect:
		return 1
	default:
		return 2
	}
}

// groupChannels orders channels as the sidebar shows them: public channels,
// then direct messages, then groups, each keeping directory order.
func groupChannels(channels []models.Channel) []models.Channel {
	grouped := make([]models.Channel, len(channels))
	copy(grouped, channels)
	sort.SliceStable(grouped, func(i, j int) bool {
		return groupRank(grouped[i].Type) < groupRank(grouped[j].Type)
	})
	return grouped
}

type sidebarModel struct {
	list     list.Model
	channels []models.Channel
}

func newSidebarModel() sidebarModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New([]list.Item{}, delegate, sidebarWidth, 20)
	l.Title = "ChatFlow"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return sidebarModel{list: l}
}

// SetChannels replaces the items and keeps the cursor on the same channel.
func (m *sidebarModel) SetChannels(channels []models.Channel) {
	current := m.Selected().ID

	m.channels = groupChannels(channels)
	items := make([]list.Item, len(m.channels))
	for i, ch := range m.channels {
		items[i] = channelItem{channel: ch}
	}
	m.list.SetItems(items)

	total := 0
	for _, ch := range m.channels {
		total += ch.Unread
	}
	m.list.Title = "ChatFlow"
	if total > 0 {
		m.list.Title = fmt.Sprintf("ChatFlow - %d unread", total)
	}

	m.SelectID(current)
}

func (m *sidebarModel) SelectID(id string) {
	for i, ch := range m.channels {
		if ch.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m sidebarModel) Selected() models.Channel {
	item, ok := m.list.SelectedItem().(channelItem)
	if !ok {
		return models.Channel{}
	}
	return item.channel
}

func (m sidebarModel) Find(id string) (models.Channel, bool) {
	for _, ch := range m.channels {
		if ch.ID == id {
			return ch, true
		}
	}
	return models.Channel{}, false
}

func (m *sidebarModel) SetSize(width, height int) {
	m.list.SetWidth(width)
	m.list.SetHeight(height)
}

func (m sidebarModel) Update(msg tea.Msg) (sidebarModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m sidebarModel) View(th theme, focused bool) string {
	border := th.border
	if focused {
		border = th.accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, false, false).
		BorderForeground(border).
		Render(m.list.View())
}
