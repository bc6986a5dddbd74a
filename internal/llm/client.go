// Package llm wraps the completion endpoints behind CloudWeGo Eino chat models.
package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Provider identifies the LLM provider to use.
type Provider string

// Config holds configuration for creating an LLM client.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	// BaseURL overrides the provider endpoint (Ollama, OpenAI-compatible gateways).
	BaseURL string

	// OpenRouter attribution headers.
	Referer string
	Title   string
}

// NewChatModel creates an Eino chat model for cfg, with the request-level
// settings from params baked into the provider config where the provider
// has no per-call option for them.
func NewChatModel(ctx context.Context, cfg Config, params Params) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return openai.NewChatModel(ctx, openAIConfig(cfg, params, nil))

	case ProviderOpenRouter:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenRouter API key is required")
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = OpenRouterBaseURL
		}
		client := &http.Client{Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": valueOr(cfg.Referer, DefaultOpenRouterRef),
				"X-Title":      valueOr(cfg.Title, DefaultOpenRouterTitle),
			},
		}}
		return openai.NewChatModel(ctx, openAIConfig(cfg, params, client))

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
		})

	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		maxTokens := params.MaxTokens
		if maxTokens <= 0 {
			maxTokens = anthropicMaxTokens
		}
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   maxTokens,
			Temperature: params.Temperature,
		})

	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		maxTokens := params.MaxTokens
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       cfg.Model,
			MaxTokens:   &maxTokens,
			Temperature: params.Temperature,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, openrouter, anthropic, gemini, ollama)", cfg.Provider)
	}
}

func openAIConfig(cfg Config, params Params, client *http.Client) *openai.ChatModelConfig {
	c := &openai.ChatModelConfig{
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		HTTPClient:  client,
		Temperature: params.Temperature,
	}
	if params.MaxTokens > 0 {
		n := params.MaxTokens
		if params.UseCompletionTokens {
			c.MaxCompletionTokens = &n
		} else {
			c.MaxTokens = &n
		}
	}
	if params.JSONMode {
		c.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return c
}

// headerTransport adds fixed headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(p) {
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderOpenRouter:
		return ProviderOpenRouter, nil
	case ProviderOllama:
		return ProviderOllama, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", p)
	}
}

// RequiresAPIKey reports whether the provider needs a secret.
func RequiresAPIKey(p Provider) bool {
	return p != ProviderOllama
}
