package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// secretsFile is the on-disk secrets store. Both the flat key and the nested
// openai.api_key form are accepted.
type secretsFile struct {
	OpenAIAPIKey string `yaml:"OPENAI_API_KEY"`
	OpenAI       struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"openai"`
}

// ResolveAPIKey returns the OpenAI API key from, in priority order: the
// OPENAI_API_KEY environment variable, the top-level OPENAI_API_KEY entry of
// the secrets file, then its nested openai.api_key entry. An empty string
// means no credential is available; that is not an error.
func ResolveAPIKey(secretsPath string) string {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		return v
	}
	data, err := os.ReadFile(secretsPath)
	if err != nil {
		return ""
	}
	var s secretsFile
	if err := yaml.Unmarshal(data, &s); err != nil {
		return ""
	}
	if s.OpenAIAPIKey != "" {
		return s.OpenAIAPIKey
	}
	return s.OpenAI.APIKey
}
