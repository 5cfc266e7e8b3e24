package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itmo-ai/qa-bot-backend/internal"
)

func TestNewSessionID(t *testing.T) {
	s := NewSession()
	assert.Len(t, s.ID(), 8)
	assert.NotEqual(t, s.ID(), NewSession().ID())
}

func TestAppendAndTurns(t *testing.T) {
	s := NewSession()
	s.Append(internal.Message{Role: internal.RoleUser, Content: "вопрос"})
	s.Append(internal.Message{Role: internal.RoleAssistant, Content: "ответ"})

	turns := s.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "вопрос", turns[0].Content)
	assert.Equal(t, "ответ", turns[1].Content)

	// Turns returns a copy; mutating it does not touch the session.
	turns[0].Content = "изменено"
	assert.Equal(t, "вопрос", s.Turns()[0].Content)
}

func TestResetSeedsWelcomeAndKeepsID(t *testing.T) {
	s := NewSession()
	id := s.ID()
	s.Append(internal.Message{Role: internal.RoleUser, Content: "вопрос"})

	s.Reset("Привет!")

	turns := s.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, internal.RoleAssistant, turns[0].Role)
	assert.Equal(t, "Привет!", turns[0].Content)
	assert.False(t, turns[0].CreatedAt.IsZero())
	assert.Equal(t, id, s.ID())
}
