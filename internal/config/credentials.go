package config

import (
	"fmt"

	"github.com/josephgoksu/monadgen/internal/llm"
)

// MissingCredentialError is the preflight failure: the selected provider has
// no API key, so no request may be sent.
type MissingCredentialError struct {
	Provider string
	EnvVar   string
	Hint     string
}

func (e *MissingCredentialError) Error() string {
	msg := fmt.Sprintf("%s not set", e.EnvVar)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// CheckCredentials verifies the selected provider has a key. Providers that
// need none (ollama) always pass.
func (c *Config) CheckCredentials() error {
	if !llm.RequiresAPIKey(c.Provider()) || c.LLM.APIKey != "" {
		return nil
	}

	err := &MissingCredentialError{
		Provider: c.LLM.Provider,
		EnvVar:   c.LLM.APIKeySelector,
		Hint:     "Set it in .env.local or the environment",
	}
	if err.EnvVar == "" {
		err.EnvVar = apiKeyEnv[llm.DefaultProvider]
	}
	if c.LLM.Provider == llm.ProviderOpenRouter {
		err.Hint = "Get one at: " + llm.OpenRouterKeysURL
	}
	return err
}
