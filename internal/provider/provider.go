// Package provider is the completion-service boundary.
package provider

import (
	"context"
	"fmt"

	"github.com/itmo-ai/qa-bot-backend/internal"
)

// TokenUsage is the usage metadata reported by the completion service.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

func (u *TokenUsage) String() string {
	if u == nil {
		return "nil"
	}
	return fmt.Sprintf("prompt=%d completion=%d total=%d",
		u.PromptTokens, u.CompletionTokens, u.TotalTokens)
}

// Completion is the generated reply plus optional usage metadata.
type Completion struct {
	Text  string
	Usage *TokenUsage
}

// ChatProvider sends an assembled message payload to the completion service.
type ChatProvider interface {
	Model() string
	Complete(ctx context.Context, messages []internal.Message) (Completion, error)
}

// MockProvider answers without an external API, for offline development and
// tests.
type MockProvider struct{}

func (m MockProvider) Model() string { return "mock-qa-bot" }

func (m MockProvider) Complete(_ context.Context, messages []internal.Message) (Completion, error) {
	last := ""
	if len(messages) > 0 {
		last = messages[len(messages)-1].Content
	}
	return Completion{
		Text:  "Понял. (mock) Ваш вопрос: \"" + last + "\"",
		Usage: &TokenUsage{},
	}, nil
}
