package email

import (
	"context"
	"sync"
)

// MemorySender collects sent messages in memory for tests.
type MemorySender struct {
	mu       sync.Mutex
	messages []Message

	// FailWith, when non-nil, is returned from every Send call.
	FailWith error
}

// NewMemorySender creates a new MemorySender.
func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

var _ Sender = (*MemorySender)(nil)

// Send records the message, or fails when FailWith is set.
func (s *MemorySender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}
	s.messages = append(s.messages, msg)
	return nil
}

// Messages returns a copy of everything sent so far.
func (s *MemorySender) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
