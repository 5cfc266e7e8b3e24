package chat

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/itmo-ai/qa-bot-backend/internal"
	"github.com/itmo-ai/qa-bot-backend/internal/chatlog"
	"github.com/itmo-ai/qa-bot-backend/internal/config"
	"github.com/itmo-ai/qa-bot-backend/internal/descriptor"
	"github.com/itmo-ai/qa-bot-backend/internal/prompts"
	"github.com/itmo-ai/qa-bot-backend/internal/provider"
	"github.com/itmo-ai/qa-bot-backend/internal/store"
)

const fallbackWelcome = "Привет! Я помогу вам с вопросами о магистерских программах ИТМО."

// Service runs the question pipeline for one session: load context and
// templates, assemble the payload, call the provider, log the outcome, append
// the reply. Turns are strictly sequential per session.
type Service struct {
	cfg      config.Config
	sess     *store.Session
	provider provider.ChatProvider
	events   *chatlog.Logger
	log      *zap.SugaredLogger
}

func NewService(cfg config.Config, sess *store.Session, p provider.ChatProvider, events *chatlog.Logger, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, sess: sess, provider: p, events: events, log: log}
}

func (s *Service) SessionID() string { return s.sess.ID() }

// Ready reports whether a completion provider is configured. Without one the
// shell must block sends; nothing else is affected.
func (s *Service) Ready() bool { return s.provider != nil }

func (s *Service) Model() string {
	if s.provider == nil {
		return s.cfg.Model
	}
	return s.provider.Model()
}

// History returns the stored turns in order.
func (s *Service) History() []internal.Message { return s.sess.Turns() }

// Context re-reads the descriptor files and returns the assembled context.
func (s *Service) Context() descriptor.Context {
	return descriptor.Load(s.log, descriptor.PathsFromConfig(s.cfg))
}

// Reset clears the conversation and reseeds the welcome turn. The session id
// is kept so a reset conversation stays correlated in the log.
func (s *Service) Reset() {
	tpl := prompts.Load(s.log, s.cfg.PromptsPath)
	s.sess.Reset(tpl.GetOr(prompts.KeyWelcomeMessage, fallbackWelcome))
}

// Send runs one user question through the pipeline and returns the assistant
// reply. A gateway failure is not an error of Send: the formatted error text
// becomes the reply and is stored in history like any other assistant turn.
// Context and templates are loaded fresh so on-disk edits apply immediately.
// Log write failures are discarded; they must never affect the conversation.
func (s *Service) Send(ctx context.Context, text string) internal.SendMessageResponse {
	question := strings.TrimSpace(text)

	refCtx := descriptor.Load(s.log, descriptor.PathsFromConfig(s.cfg))
	tpl := prompts.Load(s.log, s.cfg.PromptsPath)

	payload := Assemble(tpl, refCtx.Combined, s.sess.Turns(), question)
	s.sess.Append(internal.Message{
		Role:      internal.RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	})

	_ = s.events.Request(
		s.sess.ID(), s.Model(),
		[2]string{config.ProgramAIProduct, config.ProgramAITalentHub},
		utf8.RuneCountInString(refCtx.Combined), question)

	t0 := time.Now()
	comp, err := s.provider.Complete(ctx, payload)
	latency := time.Since(t0)

	var answer string
	if err != nil {
		answer = "Ошибка: " + err.Error()
		_ = s.events.Error(s.sess.ID(), err)
	} else {
		answer = strings.TrimSpace(comp.Text)
		_ = s.events.Response(s.sess.ID(), latency, comp.Usage, answer)
	}

	reply := internal.Message{
		Role:      internal.RoleAssistant,
		Content:   answer,
		CreatedAt: time.Now(),
	}
	s.sess.Append(reply)

	return internal.SendMessageResponse{Reply: reply, Model: s.Model()}
}
