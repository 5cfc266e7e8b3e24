// Package descriptor loads the static program reference texts that are
// injected into every completion request as context.
package descriptor

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/itmo-ai/qa-bot-backend/internal/config"
)

// Paths are the four source files: two free-text program descriptions and two
// JSON study plans.
type Paths struct {
	AIProduct       string
	AITalentHub     string
	AIProductPlan   string
	AITalentHubPlan string
}

// PathsFromConfig picks the descriptor paths out of the service config.
func PathsFromConfig(cfg config.Config) Paths {
	return Paths{
		AIProduct:       cfg.PathAIProduct,
		AITalentHub:     cfg.PathAITalentHub,
		AIProductPlan:   cfg.PathAIProductPlan,
		AITalentHubPlan: cfg.PathAITalentHubPlan,
	}
}

// Context is the assembled reference text. Combined keeps both program labels
// even when every source file is empty or unreadable.
type Context struct {
	AIProduct   string
	AITalentHub string
	Combined    string
}

// Load reads all four files and assembles the combined context block. Every
// file is re-read on each call so edits show up on the next turn. Unreadable
// or unparsable files contribute an empty string and one warning; Load never
// fails.
func Load(log *zap.SugaredLogger, p Paths) Context {
	productText := safeRead(log, p.AIProduct)
	talentHubText := safeRead(log, p.AITalentHub)
	productPlan := safeReadJSON(log, p.AIProductPlan)
	talentHubPlan := safeReadJSON(log, p.AITalentHubPlan)

	product := combine(productText, config.ProgramAIProduct, productPlan)
	talentHub := combine(talentHubText, config.ProgramAITalentHub, talentHubPlan)

	combined := strings.TrimSpace(
		config.ProgramAIProduct + ":\n" + product + "\n\n" +
			config.ProgramAITalentHub + ":\n" + talentHub)

	return Context{
		AIProduct:   product,
		AITalentHub: talentHub,
		Combined:    combined,
	}
}

// combine appends the labeled study plan to the description when a plan is
// present.
func combine(description, program, plan string) string {
	if plan == "" {
		return description
	}
	return description + "\n\nПлан обучения " + program + ":\n" + plan
}

func safeRead(log *zap.SugaredLogger, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("read_failed | path=%s | err=%v", path, err)
		return ""
	}
	return strings.TrimSpace(string(data))
}

// safeReadJSON parses a plan file and re-renders it as indented JSON with
// non-ASCII characters kept as-is, so the plan stays readable inside the
// prompt.
func safeReadJSON(log *zap.SugaredLogger, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("json_read_failed | path=%s | err=%v", path, err)
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warnf("json_read_failed | path=%s | err=%v", path, err)
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Warnf("json_read_failed | path=%s | err=%v", path, err)
		return ""
	}
	return strings.TrimSpace(buf.String())
}
