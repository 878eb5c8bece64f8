package chat

import (
	"fmt"
	"time"

	"github.com/saravenpi/chatflow/internal/models"
	"go.uber.org/zap"
)

const (
	DefaultTypingDelay = 5 * time.Second
	DefaultReplyDelay  = 2 * time.Second
)

// Event is delivered back to the Session when a Timer fires.
type Event interface {
	event()
}

// TypingDue inserts the typing indicator of a channel activation.
type TypingDue struct {
	Epoch     uint64
	ChannelID string
}

// ReplyDue replaces the typing indicator with the scripted reply.
type ReplyDue struct {
	Epoch     uint64
	ChannelID string
}

func (TypingDue) event() {}
func (ReplyDue) event()  {}

// Timer asks the host loop to deliver Event after the given delay.
type Timer struct {
	After time.Duration
	Event Event
}

type script struct {
	sender models.Sender
	reply  string
}

func scriptFor(channelID string) script {
	if channelID == "sarah" {
		return script{
			sender: models.Sender{ID: "sarah", Name: "Sarah Johnson"},
			reply:  "I just sent you the revised project timeline.",
		}
	}
	return script{
		sender: models.Sender{ID: "user-2", Name: "John Smith"},
		reply:  "Is everyone ready for our team meeting tomorrow?",
	}
}

func isTyping(m models.Message) bool { return m.IsTyping }

// timeline tracks the current channel activation. Timers carry the epoch they
// were scheduled under and are dropped once the epoch moves on.
type timeline struct {
	epoch       uint64
	channelID   string
	typingDelay time.Duration
	replyDelay  time.Duration
}

func (t *timeline) activate(channelID string) Timer {
	t.epoch++
	t.channelID = channelID
	return Timer{After: t.typingDelay, Event: TypingDue{Epoch: t.epoch, ChannelID: channelID}}
}

func (t *timeline) current(epoch uint64) bool {
	return epoch == t.epoch
}

func (s *Session) onTypingDue(ev TypingDue) []Timer {
	if !s.timeline.current(ev.Epoch) {
		s.log.Debug("stale typing event dropped",
			zap.Uint64("epoch", ev.Epoch),
			zap.Uint64("current", s.timeline.epoch),
			zap.String("channel", ev.ChannelID),
		)
		return nil
	}

	sc := scriptFor(ev.ChannelID)
	s.store.RemoveWhere(isTyping)
	s.store.Append(models.Message{
		ID:        fmt.Sprintf("typing-%d", ev.Epoch),
		Sender:    sc.sender,
		Timestamp: s.now(),
		IsTyping:  true,
	})
	s.log.Debug("typing indicator shown", zap.String("channel", ev.ChannelID), zap.String("sender", sc.sender.ID))

	return []Timer{{After: s.timeline.replyDelay, Event: ReplyDue{Epoch: ev.Epoch, ChannelID: ev.ChannelID}}}
}

func (s *Session) onReplyDue(ev ReplyDue) {
	if !s.timeline.current(ev.Epoch) {
		s.log.Debug("stale reply event dropped",
			zap.Uint64("epoch", ev.Epoch),
			zap.Uint64("current", s.timeline.epoch),
			zap.String("channel", ev.ChannelID),
		)
		return
	}

	sc := scriptFor(ev.ChannelID)
	s.store.RemoveWhere(isTyping)
	s.store.Append(models.Message{
		ID:        s.newID(),
		Content:   sc.reply,
		Sender:    sc.sender,
		Timestamp: s.now(),
	})
	s.log.Debug("scripted reply delivered", zap.String("channel", ev.ChannelID))
}
