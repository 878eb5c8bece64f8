package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/chatflow/internal/chat"
	"github.com/saravenpi/chatflow/internal/config"
	"github.com/saravenpi/chatflow/internal/mock"
	"github.com/saravenpi/chatflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, mutate ...func(*config.Config)) AppModel {
	t.Helper()

	dir, err := mock.Open()
	require.NoError(t, err)
	t.Cleanup(func() { dir.Close() })

	cfg := config.Default()
	cfg.Appearance.ShowOnboarding = false
	cfg.Canvas.ExportDir = t.TempDir()
	for _, fn := range mutate {
		fn(&cfg)
	}

	m, err := NewAppModel(Options{
		Config:    &cfg,
		Directory: dir,
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)

	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	app, ok := next.(AppModel)
	require.True(t, ok)
	return app
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func lastMessage(t *testing.T, m AppModel) models.Message {
	t.Helper()
	msgs := m.session.Messages()
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

func TestNewAppActivatesDefaultChannel(t *testing.T) {
	m := newTestApp(t)

	assert.Equal(t, "general", m.session.ActiveChannel())
	assert.Equal(t, 7, m.session.Len())
	assert.Equal(t, models.FocusComposer, m.focus)

	ch, ok := m.sidebar.Find("general")
	require.True(t, ok)
	assert.Zero(t, ch.Unread)
	assert.Equal(t, "general", m.sidebar.Selected().ID)
}

func TestUnknownDefaultChannelFallsBackToFirst(t *testing.T) {
	m := newTestApp(t, func(c *config.Config) { c.User.DefaultChannel = "nope" })
	assert.Equal(t, "general", m.session.ActiveChannel())
}

func TestSelectChannelFromSidebar(t *testing.T) {
	m := newTestApp(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, m.showInfo)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, models.FocusSidebar, m.focus)

	epoch := m.session.Epoch()
	m.sidebar.SelectID("sarah")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "sarah", m.session.ActiveChannel())
	assert.Greater(t, m.session.Epoch(), epoch)
	assert.False(t, m.showInfo)

	ch, ok := m.sidebar.Find("sarah")
	require.True(t, ok)
	assert.Zero(t, ch.Unread)
	assert.Contains(t, m.View(), "Sarah Johnson")
}

func TestReselectingActiveChannelKeepsMessages(t *testing.T) {
	m := newTestApp(t)
	m.textarea.SetValue("keep me")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 8, m.session.Len())
	epoch := m.session.Epoch()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m.sidebar.SelectID("general")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 8, m.session.Len())
	assert.Equal(t, epoch, m.session.Epoch())
	assert.Equal(t, "keep me", lastMessage(t, m).Content)
	assert.False(t, m.showInfo)

	m = update(t, m, timerFiredMsg{event: chat.TypingDue{Epoch: epoch, ChannelID: "general"}})
	assert.True(t, lastMessage(t, m).IsTyping)
}

func TestComposerFocusClearsSelection(t *testing.T) {
	m := newTestApp(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 6, m.selected)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, models.FocusComposer, m.focus)
	assert.Equal(t, -1, m.selected)

	m = update(t, m, timerFiredMsg{event: chat.TypingDue{Epoch: m.session.Epoch(), ChannelID: "general"}})
	assert.True(t, m.viewport.AtBottom())
}

func TestComposerSendsAndClears(t *testing.T) {
	m := newTestApp(t)
	m.textarea.SetValue("  hello team  ")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	last := lastMessage(t, m)
	assert.Equal(t, "hello team", last.Content)
	assert.Equal(t, "user-1", last.Sender.ID)
	assert.Empty(t, m.textarea.Value())
	assert.Equal(t, 8, m.session.Len())
}

func TestComposerIgnoresBlank(t *testing.T) {
	m := newTestApp(t)
	m.textarea.SetValue("   ")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 7, m.session.Len())
	assert.Equal(t, "   ", m.textarea.Value())
}

func TestTimelineEventsFlowThroughUpdate(t *testing.T) {
	m := newTestApp(t)
	epoch := m.session.Epoch()

	m = update(t, m, timerFiredMsg{event: chat.TypingDue{Epoch: epoch, ChannelID: "general"}})
	assert.True(t, lastMessage(t, m).IsTyping)
	assert.Contains(t, m.View(), "John Smith is typing")

	m = update(t, m, timerFiredMsg{event: chat.ReplyDue{Epoch: epoch, ChannelID: "general"}})
	last := lastMessage(t, m)
	assert.False(t, last.IsTyping)
	assert.Equal(t, "Is everyone ready for our team meeting tomorrow?", last.Content)
}

func TestStaleTimerAfterChannelSwitch(t *testing.T) {
	m := newTestApp(t)
	stale := m.session.Epoch()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m.sidebar.SelectID("design")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	before := m.session.Len()

	m = update(t, m, timerFiredMsg{event: chat.TypingDue{Epoch: stale, ChannelID: "general"}})
	assert.Equal(t, before, m.session.Len())
}

func TestDeleteSelectedMessage(t *testing.T) {
	m := newTestApp(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, models.FocusMessages, m.focus)
	require.Equal(t, 6, m.selected)

	m = update(t, m, key("k"))
	require.Equal(t, 5, m.selected)
	target := m.session.Messages()[5].ID

	m = update(t, m, key("d"))

	assert.Equal(t, 6, m.session.Len())
	for _, msg := range m.session.Messages() {
		assert.NotEqual(t, target, msg.ID)
	}
}

func TestFocusCycles(t *testing.T) {
	m := newTestApp(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.FocusSidebar, m.focus)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.FocusMessages, m.focus)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.FocusComposer, m.focus)
	assert.Equal(t, -1, m.selected)
}

func TestPresentationToggles(t *testing.T) {
	m := newTestApp(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, m.session.Presentation().DarkMode)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.True(t, m.session.Presentation().RetroMode)
	assert.Contains(t, m.View(), "90s MODE")
}

func TestKonamiCodeShowsToast(t *testing.T) {
	m := newTestApp(t)
	m.textarea.SetValue("up up down down left right left right b a")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.session.Presentation().RetroMode)
	require.Equal(t, 1, m.toasts.Len())
	assert.Contains(t, m.View(), "90s Mode Activated!")
}

func TestSearchToastExpires(t *testing.T) {
	m := newTestApp(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	require.Equal(t, 1, m.toasts.Len())
	assert.Contains(t, m.View(), "Coming Soon!")

	m = update(t, m, toastExpiredMsg{id: m.toasts.items[0].id})
	assert.Zero(t, m.toasts.Len())
}

func TestInfoPanelShowsMembersAndSharedItems(t *testing.T) {
	m := newTestApp(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})

	view := m.View()
	assert.Contains(t, view, "Members")
	assert.Contains(t, view, "Shared Media")
	assert.Contains(t, view, "Files & Links")
}

func TestOnboardingCapturesKeys(t *testing.T) {
	m := newTestApp(t, func(c *config.Config) { c.Appearance.ShowOnboarding = true })
	require.True(t, m.onboarding.open)
	assert.Contains(t, m.View(), "Welcome to ChatFlow")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.session.Presentation().DarkMode)

	for i := 0; i < len(onboardingSteps); i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	assert.False(t, m.onboarding.open)
}

func TestCanvasOpensDrawsAndCloses(t *testing.T) {
	m := newTestApp(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotNil(t, m.canvas)
	assert.Contains(t, m.View(), "Canvas")

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, key("l"))
	assert.Equal(t, 1, m.canvas.board.Len())

	m = update(t, m, key("e"))
	require.NotNil(t, m.canvas)
	assert.Equal(t, 1, m.toasts.Len())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.canvas)
}

func TestRenderMessagesGroupsHeaders(t *testing.T) {
	john := models.Sender{ID: "user-2", Name: "John Smith"}
	me := models.Sender{ID: "user-1", Name: "Your Name"}
	msgs := []models.Message{
		{ID: "1", Content: "one", Sender: john, Timestamp: testNow},
		{ID: "2", Content: "two", Sender: john, Timestamp: testNow},
		{ID: "3", Content: "three", Sender: me, Timestamp: testNow, SelfDestruct: true},
		{ID: "4", Content: "four", Sender: john, Timestamp: testNow, IsAdmin: true},
	}

	content, starts := renderMessages(msgs, renderOptions{
		width:             80,
		selfID:            "user-1",
		selected:          -1,
		theme:             newTheme(chat.Presentation{}),
		now:               testNow,
		selfDestructDelay: 10 * time.Second,
	})

	assert.Equal(t, 2, strings.Count(content, "John Smith"))
	assert.Equal(t, 1, strings.Count(content, "You •"))
	assert.Contains(t, content, "Self-destructing in 10s")
	assert.Contains(t, content, "👑")
	require.Len(t, starts, 4)
	assert.Equal(t, 0, starts[0])
	assert.Less(t, starts[1], starts[2])
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "3:00 PM", formatTimestamp(testNow, testNow))
	assert.Equal(t, "2 days ago", formatTimestamp(testNow.Add(-48*time.Hour), testNow))
	assert.Equal(t, "unknown", formatTimestamp(time.Time{}, testNow))
}

func TestGroupChannels(t *testing.T) {
	got := groupChannels([]models.Channel{
		{ID: "ux", Type: models.ChannelGroup},
		{ID: "john", Type: models.ChannelDirect},
		{ID: "general", Type: models.ChannelPublic},
		{ID: "design", Type: models.ChannelPublic},
	})

	ids := make([]string, len(got))
	for i, ch := range got {
		ids[i] = ch.ID
	}
	assert.Equal(t, []string{"general", "design", "john", "ux"}, ids)
}
