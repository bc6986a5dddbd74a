package llm

// Provider constants
const (
	// DefaultProvider is used when LLM_PROVIDER is unset.
	DefaultProvider = ProviderOpenAI

	ProviderOpenAI = "openai"

	// ProviderOpenRouter speaks the OpenAI wire protocol against openrouter.ai.
	ProviderOpenRouter = "openrouter"

	ProviderAnthropic = "anthropic"

	ProviderGemini = "gemini"

	// ProviderOllama is a local server and needs no API key.
	ProviderOllama = "ollama"
)

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// OpenRouter endpoint and attribution defaults.
const (
	OpenRouterBaseURL      = "https://openrouter.ai/api/v1"
	OpenRouterKeysURL      = "https://openrouter.ai/keys"
	DefaultOpenRouterTitle = "monadgen"
	DefaultOpenRouterRef   = "https://github.com/josephgoksu/monadgen"
)

// Completion defaults applied when a generator does not set its own.
const (
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.7

	// anthropicMaxTokens is required by the Messages API.
	anthropicMaxTokens = 4096
)

// DefaultModelForProvider returns the default model ID for a given provider.
func DefaultModelForProvider(provider string) string {
	return GetDefaultModelID(provider)
}

// InferProviderFromModel attempts to determine the provider from a model name.
func InferProviderFromModel(model string) (string, bool) {
	return InferProvider(model)
}
