package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saravenpi/chatflow/internal/models"
	"go.uber.org/zap"
)

// MessageSource provides the initial messages of a channel.
type MessageSource interface {
	Messages(channelID string, now time.Time) ([]models.Message, error)
}

// Notice is a display-only notification.
type Notice struct {
	Title       string
	Description string
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Presentation holds the global display flags. The UI reads it; only the
// Session toggles it.
type Presentation struct {
	DarkMode  bool
	RetroMode bool
}

type Options struct {
	CurrentUser       models.Sender
	TypingDelay       time.Duration
	ReplyDelay        time.Duration
	SelfDestructDelay time.Duration
	Presentation      Presentation
	Source            MessageSource
	Notifier          Notifier
	Logger            *zap.Logger
	Now               func() time.Time
	NewID             func() string
}

// Session owns the message store, the timeline epoch and the presentation
// flags. Every method must be called from the same goroutine, normally the
// Bubble Tea update loop.
type Session struct {
	user              models.Sender
	store             *Store
	timeline          timeline
	selfDestructDelay time.Duration
	presentation      Presentation
	source            MessageSource
	notifier          Notifier
	log               *zap.Logger
	now               func() time.Time
	newID             func() string
}

func NewSession(opts Options) *Session {
	s := &Session{
		user:  opts.CurrentUser,
		store: NewStore(),
		timeline: timeline{
			typingDelay: opts.TypingDelay,
			replyDelay:  opts.ReplyDelay,
		},
		selfDestructDelay: opts.SelfDestructDelay,
		presentation:      opts.Presentation,
		source:            opts.Source,
		notifier:          opts.Notifier,
		log:               opts.Logger,
		now:               opts.Now,
		newID:             opts.NewID,
	}

	if s.timeline.typingDelay <= 0 {
		s.timeline.typingDelay = DefaultTypingDelay
	}
	if s.timeline.replyDelay <= 0 {
		s.timeline.replyDelay = DefaultReplyDelay
	}
	if s.selfDestructDelay <= 0 {
		s.selfDestructDelay = DefaultSelfDestructDelay
	}
	if s.notifier == nil {
		s.notifier = NotifierFunc(func(Notice) {})
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return "msg-" + uuid.NewString() }
	}

	return s
}

// Activate switches to channelID: the store is replaced with the channel's
// messages and the timers of the previous activation become stale.
func (s *Session) Activate(channelID string) ([]Timer, error) {
	timer := s.timeline.activate(channelID)
	s.log.Debug("channel activated", zap.String("channel", channelID), zap.Uint64("epoch", s.timeline.epoch))

	if s.source == nil {
		s.store.ReplaceAll(nil)
		return []Timer{timer}, nil
	}

	messages, err := s.source.Messages(channelID, s.now())
	if err != nil {
		s.store.ReplaceAll(nil)
		return nil, fmt.Errorf("failed to load messages for %s: %w", channelID, err)
	}
	s.store.ReplaceAll(messages)

	return []Timer{timer}, nil
}

// Send appends an outgoing message and applies any command it carries.
// Empty or whitespace-only text is ignored and returns a nil message.
func (s *Session) Send(text string) (*models.Message, []Timer) {
	cmd, ok := Interpret(text)
	if !ok {
		return nil, nil
	}

	message := models.Message{
		ID:           s.newID(),
		Content:      cmd.Content,
		Sender:       s.user,
		Timestamp:    s.now(),
		SelfDestruct: cmd.SelfDestruct,
	}
	s.store.Append(message)
	s.log.Debug("message sent", zap.String("message", message.ID), zap.Bool("self_destruct", message.SelfDestruct))

	if cmd.ToggleRetro {
		s.ToggleRetroMode()
		if s.presentation.RetroMode {
			s.notifier.Notify(Notice{Title: "90s Mode Activated!", Description: "You found the secret code. Welcome to the retro zone."})
		} else {
			s.notifier.Notify(Notice{Title: "90s Mode Deactivated", Description: "Back to the present."})
		}
	}

	var timers []Timer
	if cmd.SelfDestruct {
		timers = append(timers, s.armSelfDestruct(message.ID))
		s.notifier.Notify(Notice{
			Title:       "Self-destruct armed",
			Description: fmt.Sprintf("This message will disappear in %s.", s.selfDestructDelay),
		})
	}

	return &message, timers
}

// Fire applies a fired timer and returns any follow-up timers.
func (s *Session) Fire(ev Event) []Timer {
	switch ev := ev.(type) {
	case TypingDue:
		return s.onTypingDue(ev)
	case ReplyDue:
		s.onReplyDue(ev)
	case ExpiryDue:
		s.onExpiryDue(ev)
	}
	return nil
}

// Delete removes a message by id and reports whether it was present.
func (s *Session) Delete(id string) bool {
	return s.store.RemoveByID(id) > 0
}

func (s *Session) ToggleDarkMode() {
	s.presentation.DarkMode = !s.presentation.DarkMode
}

func (s *Session) ToggleRetroMode() {
	s.presentation.RetroMode = !s.presentation.RetroMode
	s.log.Debug("retro mode toggled", zap.Bool("enabled", s.presentation.RetroMode))
}

func (s *Session) Presentation() Presentation {
	return s.presentation
}

func (s *Session) Messages() []models.Message {
	return s.store.Messages()
}

func (s *Session) Len() int {
	return s.store.Len()
}

func (s *Session) ActiveChannel() string {
	return s.timeline.channelID
}

func (s *Session) Epoch() uint64 {
	return s.timeline.epoch
}

func (s *Session) CurrentUser() models.Sender {
	return s.user
}

func (s *Session) SelfDestructDelay() time.Duration {
	return s.selfDestructDelay
}
