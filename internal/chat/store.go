package chat

import "github.com/saravenpi/chatflow/internal/models"

// Store holds the ordered messages of the active channel. It is not safe for
// concurrent use; the Session owning it serializes every mutation.
type Store struct {
	messages []models.Message
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceAll sets the store to exactly the given sequence.
func (s *Store) ReplaceAll(messages []models.Message) {
	s.messages = append([]models.Message(nil), messages...)
}

// Append adds a message at the end. Duplicate ids are kept.
func (s *Store) Append(message models.Message) {
	s.messages = append(s.messages, message)
}

// RemoveWhere drops every message matching pred, keeping the relative order
// of the rest, and returns how many were removed.
func (s *Store) RemoveWhere(pred func(models.Message) bool) int {
	kept := s.messages[:0]
	removed := 0
	for _, m := range s.messages {
		if pred(m) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(s.messages); i++ {
		s.messages[i] = models.Message{}
	}
	s.messages = kept
	return removed
}

func (s *Store) RemoveByID(id string) int {
	return s.RemoveWhere(func(m models.Message) bool { return m.ID == id })
}

func (s *Store) Find(id string) (models.Message, bool) {
	for _, m := range s.messages {
		if m.ID == id {
			return m, true
		}
	}
	return models.Message{}, false
}

func (s *Store) Messages() []models.Message {
	return append([]models.Message(nil), s.messages...)
}

func (s *Store) Len() int {
	return len(s.messages)
}
