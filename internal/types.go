package internal

import "time"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. CreatedAt is set for stored history
// turns; messages synthesized for a completion payload leave it zero.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type ChatHistory struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type SendMessageResponse struct {
	Reply Message `json:"reply"`
	Model string  `json:"model"`
}

// ContextResponse mirrors what the original UI shows in its sidebar: the two
// per-program blocks and the combined context injected into every request.
type ContextResponse struct {
	AIProduct   string `json:"ai_product"`
	AITalentHub string `json:"ai_talent_hub"`
	Combined    string `json:"combined"`
}

type KeyStatusResponse struct {
	Configured bool   `json:"configured"`
	Message    string `json:"message"`
}
