package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itmo-ai/qa-bot-backend/internal"
	"github.com/itmo-ai/qa-bot-backend/internal/chatlog"
	"github.com/itmo-ai/qa-bot-backend/internal/config"
	"github.com/itmo-ai/qa-bot-backend/internal/provider"
	"github.com/itmo-ai/qa-bot-backend/internal/store"
)

// scriptedProvider records every payload it receives and answers with a fixed
// reply or error.
type scriptedProvider struct {
	reply string
	err   error
	calls [][]internal.Message
}

func (p *scriptedProvider) Model() string { return "test-model" }

func (p *scriptedProvider) Complete(_ context.Context, messages []internal.Message) (provider.Completion, error) {
	p.calls = append(p.calls, messages)
	if p.err != nil {
		return provider.Completion{}, p.err
	}
	return provider.Completion{
		Text:  p.reply,
		Usage: &provider.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

type fixture struct {
	svc     *Service
	prov    *scriptedProvider
	logPath string
}

func newFixture(t *testing.T, prov *scriptedProvider) fixture {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ai_product.md"), []byte("Desc A"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ai_product_plan.json"), []byte(`{"k":1}`), 0o644))

	cfg := config.Config{
		PathAIProduct:       filepath.Join(dir, "ai_product.md"),
		PathAITalentHub:     filepath.Join(dir, "ai.md"),
		PathAIProductPlan:   filepath.Join(dir, "ai_product_plan.json"),
		PathAITalentHubPlan: filepath.Join(dir, "ai_plan.json"),
		PromptsPath:         filepath.Join(dir, "prompts.yaml"),
		LogPath:             filepath.Join(dir, "chat.log"),
		Model:               "test-model",
	}

	events, err := chatlog.New(cfg.LogPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = events.Close() })

	svc := NewService(cfg, store.NewSession(), prov, events, zap.NewNop().Sugar())
	return fixture{svc: svc, prov: prov, logPath: cfg.LogPath}
}

func logLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestSendSuccess(t *testing.T) {
	f := newFixture(t, &scriptedProvider{reply: "  Это ответ.  "})

	resp := f.svc.Send(context.Background(), " Какие есть курсы? ")

	assert.Equal(t, internal.RoleAssistant, resp.Reply.Role)
	assert.Equal(t, "Это ответ.", resp.Reply.Content)
	assert.Equal(t, "test-model", resp.Model)

	history := f.svc.History()
	require.Len(t, history, 2)
	assert.Equal(t, internal.RoleUser, history[0].Role)
	assert.Equal(t, "Какие есть курсы?", history[0].Content)
	assert.Equal(t, "Это ответ.", history[1].Content)

	lines := logLines(t, f.logPath)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "session="+f.svc.SessionID())
	assert.Contains(t, lines[0], "| submit |")
	assert.Contains(t, lines[1], "session="+f.svc.SessionID())
	assert.Contains(t, lines[1], "| success |")
	assert.Contains(t, lines[1], "usage=prompt=10 completion=5 total=15")
}

func TestSendPayloadShapeWithEmptyHistory(t *testing.T) {
	f := newFixture(t, &scriptedProvider{reply: "ок"})

	f.svc.Send(context.Background(), "Hello")

	require.Len(t, f.prov.calls, 1)
	payload := f.prov.calls[0]
	require.Len(t, payload, 3)
	assert.Equal(t, internal.RoleSystem, payload[0].Role)
	assert.Equal(t, internal.RoleSystem, payload[1].Role)
	assert.Contains(t, payload[1].Content, "AI Product Management:\nDesc A")
	assert.Contains(t, payload[1].Content, "План обучения AI Product Management:\n{\n  \"k\": 1\n}")
	assert.Equal(t, internal.Message{Role: internal.RoleUser, Content: "Hello"}, payload[2])
}

func TestSendGatewayFailure(t *testing.T) {
	f := newFixture(t, &scriptedProvider{err: errors.New("таймаут соединения")})

	resp := f.svc.Send(context.Background(), "Hello")

	assert.Equal(t, "Ошибка: таймаут соединения", resp.Reply.Content)

	history := f.svc.History()
	require.Len(t, history, 2)
	assert.Equal(t, internal.RoleAssistant, history[1].Role)
	assert.Equal(t, "Ошибка: таймаут соединения", history[1].Content)

	lines := logLines(t, f.logPath)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "| submit |")
	assert.Contains(t, lines[1], " ERROR ")
	assert.Contains(t, lines[1], "session="+f.svc.SessionID())
	for _, line := range lines {
		assert.NotContains(t, line, "| success |")
	}
}

func TestFailedTurnIsResentAsHistory(t *testing.T) {
	prov := &scriptedProvider{err: errors.New("таймаут")}
	f := newFixture(t, prov)

	f.svc.Send(context.Background(), "первый")
	prov.err = nil
	prov.reply = "ответ"
	f.svc.Send(context.Background(), "второй")

	require.Len(t, prov.calls, 2)
	second := prov.calls[1]
	// error reply from turn one rides along as assistant history
	require.Len(t, second, 5)
	assert.Equal(t, "первый", second[2].Content)
	assert.Equal(t, "Ошибка: таймаут", second[3].Content)
	assert.Equal(t, "второй", second[4].Content)
}

func TestResetSeedsWelcome(t *testing.T) {
	f := newFixture(t, &scriptedProvider{reply: "ок"})

	f.svc.Send(context.Background(), "вопрос")
	f.svc.Reset()

	history := f.svc.History()
	require.Len(t, history, 1)
	assert.Equal(t, internal.RoleAssistant, history[0].Role)
	assert.Equal(t, fallbackWelcome, history[0].Content)
}

func TestReadyAndModelWithoutProvider(t *testing.T) {
	f := newFixture(t, &scriptedProvider{})
	assert.True(t, f.svc.Ready())

	svc := NewService(config.Config{Model: "configured-model"}, store.NewSession(), nil, nil, zap.NewNop().Sugar())
	assert.False(t, svc.Ready())
	assert.Equal(t, "configured-model", svc.Model())
}
