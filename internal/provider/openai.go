package provider

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/itmo-ai/qa-bot-backend/internal"
)

// OpenAIProvider calls the chat completions API through go-openai. The base
// URL is configurable so the service can run behind a proxy endpoint.
type OpenAIProvider struct {
	model  string
	client *openai.Client
}

func NewOpenAIProvider(apiKey, model, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY пустой")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}, nil
}

func (p *OpenAIProvider) Model() string { return p.model }

// Complete sends model plus messages and nothing else; no max-token cap or
// sampling parameters are forwarded.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []internal.Message) (Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Completion{}, err
	}
	if len(resp.Choices) == 0 {
		return Completion{}, errors.New("пустой ответ от OpenAI")
	}
	return Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: &TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
