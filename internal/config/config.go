package config

import "os"

// Defaults mirror the deployed bot configuration.
const (
	DefaultModel = "gpt-5-nano"

	// DefaultMaxTokens is defined in the deployed configuration but is not
	// forwarded on completion requests; the request carries only model and
	// messages. Kept for parity, do not wire it into the call without
	// confirming the intended behavior.
	DefaultMaxTokens = 600

	DefaultBaseURL = "https://api.proxyapi.ru/openai/v1"

	ProgramAIProduct   = "AI Product Management"
	ProgramAITalentHub = "AI Talent Hub"
)

// Config holds file paths and service settings. Every field has a fixed
// default and an environment override.
type Config struct {
	PathAIProduct       string
	PathAITalentHub     string
	PathAIProductPlan   string
	PathAITalentHubPlan string
	PromptsPath         string
	SecretsPath         string
	LogPath             string

	Model   string
	BaseURL string
	Port    string
}

// Load reads configuration from environment variables, falling back to the
// defaults above.
func Load() Config {
	return Config{
		PathAIProduct:       envOrDefault("QA_PATH_AI_PRODUCT", "summary/ai_product/ai_product.md"),
		PathAITalentHub:     envOrDefault("QA_PATH_AI_TALENT_HUB", "summary/ai_talent_hub/ai.md"),
		PathAIProductPlan:   envOrDefault("QA_PATH_AI_PRODUCT_PLAN", "plan/ai_product_plan.json"),
		PathAITalentHubPlan: envOrDefault("QA_PATH_AI_TALENT_HUB_PLAN", "plan/ai_plan.json"),
		PromptsPath:         envOrDefault("QA_PROMPTS_PATH", "prompts.yaml"),
		SecretsPath:         envOrDefault("QA_SECRETS_PATH", "secrets.yaml"),
		LogPath:             envOrDefault("QA_LOG_PATH", "logs/chat.log"),
		Model:               envOrDefault("OPENAI_MODEL", DefaultModel),
		BaseURL:             envOrDefault("OPENAI_BASE_URL", DefaultBaseURL),
		Port:                envOrDefault("PORT", "8080"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
