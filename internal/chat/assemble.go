// Package chat builds completion payloads and runs the question pipeline.
package chat

import (
	"strings"

	"github.com/itmo-ai/qa-bot-backend/internal"
	"github.com/itmo-ai/qa-bot-backend/internal/prompts"
)

// Call-site fallbacks, applied per key when the template file parsed but the
// key is absent.
const (
	fallbackSystemPrompt  = "Ты — QA-ассистент."
	fallbackContextPrompt = "Контекст:\n{context}"
)

// Assemble builds the ordered message payload for a completion call: the
// system prompt, the context prompt with {context} substituted, the stored
// history (user and assistant turns only, original order, no windowing), then
// the trimmed user message. Pure function; userMessage must be non-empty
// after trimming, which the caller enforces by not invoking the pipeline.
func Assemble(tpl prompts.Template, combined string, history []internal.Message, userMessage string) []internal.Message {
	systemPrompt := tpl.GetOr(prompts.KeySystemPrompt, fallbackSystemPrompt)
	contextPrompt := strings.Replace(
		tpl.GetOr(prompts.KeyContextPrompt, fallbackContextPrompt),
		"{context}", strings.TrimSpace(combined), 1)

	payload := make([]internal.Message, 0, len(history)+3)
	payload = append(payload,
		internal.Message{Role: internal.RoleSystem, Content: systemPrompt},
		internal.Message{Role: internal.RoleSystem, Content: contextPrompt},
	)
	for _, m := range history {
		if m.Role != internal.RoleUser && m.Role != internal.RoleAssistant {
			continue
		}
		payload = append(payload, internal.Message{Role: m.Role, Content: m.Content})
	}
	return append(payload, internal.Message{
		Role:    internal.RoleUser,
		Content: strings.TrimSpace(userMessage),
	})
}
