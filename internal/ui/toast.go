package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/chatflow/internal/chat"
)

type toastExpiredMsg struct {
	id int
}

type toast struct {
	id        int
	notice    chat.Notice
	scheduled bool
}

// toastQueue is the notification surface. It is shared by pointer between the
// session and every copy of the app model.
type toastQueue struct {
	next     int
	items    []toast
	duration time.Duration
}

func newToastQueue(d time.Duration) *toastQueue {
	return &toastQueue{duration: d}
}

func (q *toastQueue) Notify(n chat.Notice) {
	q.next++
	q.items = append(q.items, toast{id: q.next, notice: n})
}

// flush schedules expiry for toasts added since the last call.
func (q *toastQueue) flush() tea.Cmd {
	var cmds []tea.Cmd
	for i := range q.items {
		if q.items[i].scheduled {
			continue
		}
		q.items[i].scheduled = true
		id := q.items[i].id
		cmds = append(cmds, tea.Tick(q.duration, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (q *toastQueue) expire(id int) {
	for i, t := range q.items {
		if t.id == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

func (q *toastQueue) Len() int {
	return len(q.items)
}

func (q *toastQueue) View(width int) string {
	if len(q.items) == 0 {
		return ""
	}

	var b strings.Builder
	for i, t := range q.items {
		if i > 0 {
			b.WriteString("\n")
		}
		body := titleStyle.Render(t.notice.Title)
		if t.notice.Description != "" {
			body += "\n" + helpStyle.Render(t.notice.Description)
		}
		style := toastStyle
		if width > 8 {
			style = style.MaxWidth(width)
		}
		b.WriteString(style.Render(body))
	}
	return b.String()
}
