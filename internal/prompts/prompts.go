// Package prompts loads the named prompt templates from a YAML file.
package prompts

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Recognized template keys.
const (
	KeySystemPrompt     = "system_prompt"
	KeyContextPrompt    = "context_prompt"
	KeyWelcomeMessage   = "welcome_message"
	KeyNoContextMessage = "no_context_message"
	KeyErrorMessage     = "error_message"
)

// Template maps template names to their text.
type Template map[string]string

// Defaults is the fixed mapping returned when the template file cannot be
// loaded at all.
func Defaults() Template {
	return Template{
		KeySystemPrompt:     "Ты — QA-ассистент. Отвечай только по предоставленному контексту.",
		KeyContextPrompt:    "Контекст:\n{context}",
		KeyNoContextMessage: "Информация не найдена в контексте.",
		KeyErrorMessage:     "Произошла ошибка.",
	}
}

// Load reads and parses the template file. On any failure it logs one warning
// and returns Defaults(). A successfully parsed file is returned as-is, even
// when keys are missing; callers apply their own per-key fallback via GetOr.
// The file is re-read on every call so it can be edited between turns.
func Load(log *zap.SugaredLogger, path string) Template {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("prompts_load_failed | path=%s | err=%v", path, err)
		return Defaults()
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		log.Warnf("prompts_load_failed | path=%s | err=%v", path, err)
		return Defaults()
	}
	if t == nil {
		t = Template{}
	}
	return t
}

// GetOr returns the template for key, or fallback when the key is absent or
// empty.
func (t Template) GetOr(key, fallback string) string {
	if v, ok := t[key]; ok && v != "" {
		return v
	}
	return fallback
}
