// Package store holds the in-memory conversation state for one session.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itmo-ai/qa-bot-backend/internal"
)

// Session is one continuous conversation: a short id used for log correlation
// plus an append-only sequence of turns. The id survives Reset; only the turns
// are cleared.
type Session struct {
	id string

	mu    sync.Mutex
	turns []internal.Message
}

// NewSession creates an empty session with a fresh 8-character id.
func NewSession() *Session {
	return &Session{
		id:    strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		turns: make([]internal.Message, 0, 64),
	}
}

func (s *Session) ID() string { return s.id }

// Turns returns a copy of the stored history in order.
func (s *Session) Turns() []internal.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]internal.Message, len(s.turns))
	copy(cp, s.turns)
	return cp
}

// Append stores one turn at the end of the history.
func (s *Session) Append(msg internal.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, msg)
}

// Reset clears the history and seeds a single assistant welcome turn.
func (s *Session) Reset(welcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = s.turns[:0]
	s.turns = append(s.turns, internal.Message{
		Role:      internal.RoleAssistant,
		Content:   welcome,
		CreatedAt: time.Now(),
	})
}
