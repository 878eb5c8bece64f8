package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/chatflow/internal/chat"
	"github.com/saravenpi/chatflow/internal/config"
	"github.com/saravenpi/chatflow/internal/models"
	"github.com/saravenpi/chatflow/internal/roster"
	"go.uber.org/zap"
)

const sidebarWidth = 28

// Directory is the read side of the channel directory.
type Directory interface {
	chat.MessageSource
	Channels() ([]models.Channel, error)
	MarkChannelRead(id string) error
	SharedItems(now time.Time) ([]models.SharedItem, error)
}

type Options struct {
	Config    *config.Config
	Directory Directory
	Roster    *roster.Roster
	Logger    *zap.Logger
	Now       func() time.Time
}

type timerFiredMsg struct {
	event chat.Event
}

// AppModel is the root model. The session it holds is only touched from
// Update, so every store mutation happens on the Bubble Tea loop.
type AppModel struct {
	cfg     *config.Config
	session *chat.Session
	dir     Directory
	roster  *roster.Roster
	log     *zap.Logger
	now     func() time.Time
	toasts  *toastQueue

	sidebar    sidebarModel
	viewport   viewport.Model
	textarea   textarea.Model
	onboarding onboardingModel
	canvas     *canvasModel

	focus    models.Focus
	showInfo bool
	selected int
	starts   []int
	initCmd  tea.Cmd
	err      error

	windowWidth  int
	windowHeight int
}

func NewAppModel(opts Options) (AppModel, error) {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	r := opts.Roster
	if r == nil {
		var err error
		if r, err = roster.Default(); err != nil {
			return AppModel{}, err
		}
	}

	channels, err := opts.Directory.Channels()
	if err != nil {
		return AppModel{}, fmt.Errorf("failed to load channels: %w", err)
	}

	toasts := newToastQueue(cfg.Timeline.ToastDuration)
	session := chat.NewSession(chat.Options{
		CurrentUser:       models.Sender{ID: cfg.User.ID, Name: cfg.User.Name},
		TypingDelay:       cfg.Timeline.TypingDelay,
		ReplyDelay:        cfg.Timeline.ReplyDelay,
		SelfDestructDelay: cfg.Timeline.SelfDestructDelay,
		Presentation: chat.Presentation{
			DarkMode:  cfg.Appearance.DarkMode,
			RetroMode: cfg.Appearance.RetroMode,
		},
		Source:   opts.Directory,
		Notifier: toasts,
		Logger:   log,
		Now:      now,
	})

	vp := viewport.New(80, 20)

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 1000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetKeys("ctrl+j", "alt+enter")

	m := AppModel{
		cfg:          cfg,
		session:      session,
		dir:          opts.Directory,
		roster:       r,
		log:          log,
		now:          now,
		toasts:       toasts,
		sidebar:      newSidebarModel(),
		viewport:     vp,
		textarea:     ta,
		onboarding:   newOnboardingModel(cfg.Appearance.ShowOnboarding),
		selected:     -1,
		windowWidth:  100,
		windowHeight: 30,
	}
	m.sidebar.SetChannels(channels)

	initial := cfg.User.DefaultChannel
	if _, ok := m.sidebar.Find(initial); !ok && len(m.sidebar.channels) > 0 {
		initial = m.sidebar.channels[0].ID
	}
	m.initCmd = tea.Batch(m.selectChannel(initial), m.setFocus(models.FocusComposer))
	m.layout()

	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

// schedule turns session timers into ticks that fire back into Update.
func schedule(timers []chat.Timer) tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range timers {
		ev := t.Event
		cmds = append(cmds, tea.Tick(t.After, func(time.Time) tea.Msg {
			return timerFiredMsg{event: ev}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) selectChannel(id string) tea.Cmd {
	timers, err := m.session.Activate(id)
	m.err = err
	if err != nil {
		m.log.Error("channel activation failed", zap.String("channel", id), zap.Error(err))
	}

	if err := m.dir.MarkChannelRead(id); err != nil {
		m.log.Warn("failed to mark channel read", zap.String("channel", id), zap.Error(err))
	}
	if channels, err := m.dir.Channels(); err == nil {
		m.sidebar.SetChannels(channels)
	}
	m.sidebar.SelectID(id)

	m.showInfo = false
	m.selected = -1
	m.layout()
	m.refresh(true)

	return tea.Batch(schedule(timers), m.toasts.flush())
}

// reopenChannel handles a selection of the channel already shown: the
// messages and pending timers are kept.
func (m *AppModel) reopenChannel(id string) {
	if err := m.dir.MarkChannelRead(id); err != nil {
		m.log.Warn("failed to mark channel read", zap.String("channel", id), zap.Error(err))
	}
	if channels, err := m.dir.Channels(); err == nil {
		m.sidebar.SetChannels(channels)
	}
	m.showInfo = false
	m.layout()
	m.refresh(m.selected < 0)
}

func (m *AppModel) setFocus(f models.Focus) tea.Cmd {
	m.focus = f
	if f != models.FocusMessages && m.selected >= 0 {
		m.selected = -1
		m.refresh(true)
	}
	if f == models.FocusComposer {
		return m.textarea.Focus()
	}
	m.textarea.Blur()
	if f == models.FocusMessages && m.selected < 0 {
		m.selected = m.session.Len() - 1
		m.refresh(false)
	}
	return nil
}

func (m *AppModel) cycleFocus(step int) tea.Cmd {
	order := []models.Focus{models.FocusSidebar, models.FocusMessages, models.FocusComposer}
	i := 0
	for j, f := range order {
		if f == m.focus {
			i = j
		}
	}
	i = (i + step + len(order)) % len(order)
	return m.setFocus(order[i])
}

func (m *AppModel) layout() {
	mainWidth := m.windowWidth - sidebarWidth
	if m.showInfo {
		mainWidth -= infoPanelWidth
	}
	if mainWidth < 20 {
		mainWidth = 20
	}

	headerHeight := 2
	composerHeight := 5
	helpHeight := 1
	vpHeight := m.windowHeight - headerHeight - composerHeight - helpHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.sidebar.SetSize(sidebarWidth-1, m.windowHeight-1)
	m.viewport.Width = mainWidth - 2
	m.viewport.Height = vpHeight
	m.textarea.SetWidth(mainWidth - 2)
}

func (m *AppModel) clampSelection() {
	if m.selected >= m.session.Len() {
		m.selected = m.session.Len() - 1
	}
}

// refresh re-renders the message list into the viewport.
func (m *AppModel) refresh(bottom bool) {
	m.clampSelection()
	content, starts := renderMessages(m.session.Messages(), renderOptions{
		width:             m.viewport.Width,
		selfID:            m.session.CurrentUser().ID,
		selected:          m.selected,
		theme:             newTheme(m.session.Presentation()),
		now:               m.now(),
		selfDestructDelay: m.session.SelfDestructDelay(),
	})
	m.viewport.SetContent(content)
	m.starts = starts

	if bottom {
		m.viewport.GotoBottom()
		return
	}
	if m.selected >= 0 && m.selected < len(starts) {
		line := starts[m.selected]
		if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(line)
		}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.layout()
		m.refresh(true)
		return m, nil

	case timerFiredMsg:
		timers := m.session.Fire(msg.event)
		m.refresh(m.selected < 0)
		return m, tea.Batch(schedule(timers), m.toasts.flush())

	case toastExpiredMsg:
		m.toasts.expire(msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.onboarding.open {
		m.onboarding = m.onboarding.Update(msg)
		return m, nil
	}

	if m.canvas != nil {
		c, open := m.canvas.Update(msg)
		m.canvas = &c
		if !open {
			m.canvas = nil
		}
		return m, m.toasts.flush()
	}

	switch msg.String() {
	case "tab":
		return m, m.cycleFocus(1)
	case "shift+tab":
		return m, m.cycleFocus(-1)
	case "ctrl+t":
		m.session.ToggleDarkMode()
		m.refresh(m.selected < 0)
		return m, nil
	case "ctrl+r":
		m.session.ToggleRetroMode()
		m.refresh(m.selected < 0)
		return m, nil
	case "ctrl+o":
		m.showInfo = !m.showInfo
		m.layout()
		m.refresh(m.selected < 0)
		return m, nil
	case "ctrl+f":
		m.toasts.Notify(chat.Notice{Title: "Coming Soon!", Description: "Search will be available in the next update."})
		return m, m.toasts.flush()
	case "ctrl+g":
		c := newCanvasModel(m.windowWidth, m.windowHeight, m.cfg.Canvas.ExportDir, m.toasts)
		m.canvas = &c
		return m, nil
	case "f1":
		m.onboarding = newOnboardingModel(true)
		return m, nil
	}

	switch m.focus {
	case models.FocusSidebar:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			ch := m.sidebar.Selected()
			if ch.ID == "" {
				return m, nil
			}
			if ch.ID == m.session.ActiveChannel() {
				m.reopenChannel(ch.ID)
				return m, nil
			}
			return m, m.selectChannel(ch.ID)
		}
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd

	case models.FocusMessages:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			m.refresh(false)
			return m, nil
		case "down", "j":
			if m.selected < m.session.Len()-1 {
				m.selected++
			}
			m.refresh(false)
			return m, nil
		case "d", "delete":
			msgs := m.session.Messages()
			if m.selected < 0 || m.selected >= len(msgs) {
				return m, nil
			}
			m.session.Delete(msgs[m.selected].ID)
			m.refresh(false)
			return m, nil
		case "esc":
			return m, m.setFocus(models.FocusComposer)
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	default:
		switch msg.String() {
		case "enter":
			sent, timers := m.session.Send(m.textarea.Value())
			if sent == nil {
				return m, nil
			}
			m.textarea.Reset()
			m.selected = -1
			m.refresh(true)
			return m, tea.Batch(schedule(timers), m.toasts.flush())
		case "esc":
			return m, m.setFocus(models.FocusSidebar)
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
}

func (m AppModel) activeChannel() models.Channel {
	id := m.session.ActiveChannel()
	if ch, ok := m.sidebar.Find(id); ok {
		return ch
	}
	return models.Channel{ID: id, Name: id, Type: models.ChannelPublic}
}

func (m AppModel) helpText() string {
	switch m.focus {
	case models.FocusSidebar:
		return "↑↓/jk: navigate • enter: open • tab: focus • ctrl+o: info • ctrl+g: canvas • q: quit"
	case models.FocusMessages:
		scrollPercent := int(m.viewport.ScrollPercent() * 100)
		return fmt.Sprintf("↑↓/jk: select • d: delete • tab: focus • ctrl+t: dark • ctrl+o: info • q: quit • %d%%", scrollPercent)
	default:
		return "enter: send • ctrl+j: newline • tab: focus • ctrl+f: search • ctrl+t: dark • esc: sidebar"
	}
}

func (m AppModel) View() string {
	th := newTheme(m.session.Presentation())

	if m.onboarding.open {
		return lipgloss.Place(m.windowWidth, m.windowHeight, lipgloss.Center, lipgloss.Center,
			m.onboarding.View(th, m.windowWidth))
	}

	if m.canvas != nil {
		s := m.canvas.View(th)
		if m.toasts.Len() > 0 {
			s += "\n" + m.toasts.View(m.windowWidth)
		}
		return s
	}

	ch := m.activeChannel()

	var header strings.Builder
	header.WriteString(titleStyle.Render(channelPrefix(ch.Type) + ch.Name))
	header.WriteString(" " + th.muted.Render(ch.Type.Label()))
	if p := m.session.Presentation(); p.RetroMode {
		header.WriteString(" " + badgeStyle.Render("90s MODE"))
	}

	vp := m.viewport
	toasts := m.toasts.View(vp.Width)
	if toasts != "" {
		vp.Height -= lipgloss.Height(toasts)
		if vp.Height < 1 {
			vp.Height = 1
		}
	}

	var main strings.Builder
	main.WriteString(header.String() + "\n")
	if m.err != nil {
		main.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	} else {
		main.WriteString("\n")
	}
	if m.session.Len() == 0 {
		main.WriteString(th.muted.Render("  No messages in this channel yet.") + "\n")
	} else {
		main.WriteString(vp.View() + "\n")
	}
	if toasts != "" {
		main.WriteString(toasts + "\n")
	}
	main.WriteString(inputStyle.Render(fmt.Sprintf("Message %s%s", channelPrefix(ch.Type), ch.Name)) + "\n")
	main.WriteString(m.textarea.View() + "\n")
	main.WriteString(helpStyle.Render(m.helpText()))

	mainWidth := m.windowWidth - sidebarWidth
	if m.showInfo {
		mainWidth -= infoPanelWidth
	}
	columns := []string{
		m.sidebar.View(th, m.focus == models.FocusSidebar),
		lipgloss.NewStyle().Width(mainWidth).PaddingLeft(1).Render(main.String()),
	}

	if m.showInfo {
		shared, err := m.dir.SharedItems(m.now())
		if err != nil {
			m.log.Warn("failed to load shared items", zap.Error(err))
		}
		panel := infoPanel{
			channel:        ch,
			members:        channelMembers(m.roster, ch),
			shared:         shared,
			roster:         m.roster,
			avatarEndpoint: m.cfg.Avatar.Endpoint,
			now:            m.now(),
		}
		columns = append(columns, panel.View(th, m.windowHeight))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
