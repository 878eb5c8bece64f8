package chat

import (
	"time"

	"go.uber.org/zap"
)

const DefaultSelfDestructDelay = 10 * time.Second

// ExpiryDue removes a self-destructing message. It is not bound to a channel
// activation: navigating away does not cancel it.
type ExpiryDue struct {
	MessageID string
}

func (ExpiryDue) event() {}

func (s *Session) armSelfDestruct(id string) Timer {
	s.log.Debug("self-destruct armed", zap.String("message", id), zap.Duration("after", s.selfDestructDelay))
	return Timer{After: s.selfDestructDelay, Event: ExpiryDue{MessageID: id}}
}

// onExpiryDue removes by id, so a message deleted by hand, or one that left
// the store on a channel switch, makes this a no-op.
func (s *Session) onExpiryDue(ev ExpiryDue) {
	removed := s.store.RemoveByID(ev.MessageID)
	s.log.Debug("self-destruct expired", zap.String("message", ev.MessageID), zap.Int("removed", removed))
}
