package llm

import (
	"fmt"
	"sort"
	"strings"
)

// Model represents a complete model definition including metadata and pricing.
type Model struct {
	ID          string   // Canonical model ID sent to the provider
	Provider    string   // Provider display name
	ProviderID  string   // Internal provider ID
	Aliases     []string // Short names accepted on the CLI and API
	InputPer1M  float64  // $ per 1M input tokens
	OutputPer1M float64  // $ per 1M output tokens
	IsDefault   bool     // Default model for its provider
}

// ModelRegistry lists every model the service knows how to price and route.
// Prices last updated: 2025-12
var ModelRegistry = []Model{
	// OpenAI
	{ID: "gpt-4o", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-2024-08-06"}, InputPer1M: 2.50, OutputPer1M: 10.00, IsDefault: true},
	{ID: "gpt-4o-mini", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-mini-2024-07-18"}, InputPer1M: 0.15, OutputPer1M: 0.60},
	{ID: "gpt-4-turbo-preview", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4-turbo"}, InputPer1M: 10.00, OutputPer1M: 30.00},
	{ID: "gpt-3.5-turbo", Provider: "OpenAI", ProviderID: ProviderOpenAI, InputPer1M: 0.50, OutputPer1M: 1.50},
	{ID: "o3-mini-2025-01-31", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"o3-mini"}, InputPer1M: 1.10, OutputPer1M: 4.40},
	{ID: "o3-2025-04-16", Provider: "OpenAI", ProviderID: ProviderOpenAI, Aliases: []string{"o3"}, InputPer1M: 2.00, OutputPer1M: 8.00},

	// OpenRouter (provider/model ids, short aliases)
	{ID: "anthropic/claude-3.5-sonnet", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"claude-3.5-sonnet"}, InputPer1M: 3.00, OutputPer1M: 15.00, IsDefault: true},
	{ID: "anthropic/claude-3-opus", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"claude-3-opus"}, InputPer1M: 15.00, OutputPer1M: 75.00},
	{ID: "anthropic/claude-3-sonnet", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"claude-3-sonnet"}, InputPer1M: 3.00, OutputPer1M: 15.00},
	{ID: "anthropic/claude-3-haiku", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"claude-3-haiku"}, InputPer1M: 0.25, OutputPer1M: 1.25},
	{ID: "google/gemini-pro-1.5", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"gemini-pro-1.5"}, InputPer1M: 1.25, OutputPer1M: 5.00},
	{ID: "google/gemini-flash-1.5", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"gemini-flash-1.5"}, InputPer1M: 0.075, OutputPer1M: 0.30},
	{ID: "meta-llama/llama-3.1-405b-instruct", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"llama-3.1-405b"}, InputPer1M: 3.00, OutputPer1M: 3.00},
	{ID: "meta-llama/llama-3.1-70b-instruct", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"llama-3.1-70b"}, InputPer1M: 0.40, OutputPer1M: 0.40},
	{ID: "meta-llama/llama-3.1-8b-instruct", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"llama-3.1-8b"}, InputPer1M: 0.05, OutputPer1M: 0.05},
	{ID: "mistralai/mistral-large", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"mistral-large"}, InputPer1M: 2.00, OutputPer1M: 6.00},
	{ID: "mistralai/mistral-medium", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"mistral-medium"}, InputPer1M: 2.70, OutputPer1M: 8.10},
	{ID: "moonshotai/kimi-k2-0905", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"kimi-k2"}, InputPer1M: 0.60, OutputPer1M: 2.50},
	{ID: "qwen/qwen-2.5-72b-instruct", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"qwen-2.5-72b"}, InputPer1M: 0.35, OutputPer1M: 0.40},
	{ID: "deepseek/deepseek-chat", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"deepseek-chat"}, InputPer1M: 0.30, OutputPer1M: 0.85},
	{ID: "thedrummer/anubis-70b-v1.1", Provider: "OpenRouter", ProviderID: ProviderOpenRouter, Aliases: []string{"thedrummer-anubis"}, InputPer1M: 0.50, OutputPer1M: 0.80},

	// Anthropic
	{ID: "claude-3-5-sonnet-latest", Provider: "Anthropic", ProviderID: ProviderAnthropic, Aliases: []string{"claude-3-5-sonnet-20241022"}, InputPer1M: 3.00, OutputPer1M: 15.00, IsDefault: true},
	{ID: "claude-3-5-haiku-latest", Provider: "Anthropic", ProviderID: ProviderAnthropic, Aliases: []string{"claude-3-5-haiku-20241022"}, InputPer1M: 0.80, OutputPer1M: 4.00},
	{ID: "claude-3-opus-latest", Provider: "Anthropic", ProviderID: ProviderAnthropic, Aliases: []string{"claude-3-opus-20240229"}, InputPer1M: 15.00, OutputPer1M: 75.00},

	// Google Gemini
	{ID: "gemini-2.0-flash", Provider: "Google", ProviderID: ProviderGemini, InputPer1M: 0.10, OutputPer1M: 0.40, IsDefault: true},
	{ID: "gemini-2.5-pro", Provider: "Google", ProviderID: ProviderGemini, InputPer1M: 1.25, OutputPer1M: 10.00},
	{ID: "gemini-2.5-flash", Provider: "Google", ProviderID: ProviderGemini, InputPer1M: 0.30, OutputPer1M: 2.50},

	// Ollama (local, no pricing)
	{ID: "llama3.2", Provider: "Ollama", ProviderID: ProviderOllama, IsDefault: true},
}

var modelIndex map[string]*Model

func init() {
	buildModelIndex()
}

func buildModelIndex() {
	modelIndex = make(map[string]*Model)
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		modelIndex[m.ID] = m
		for _, alias := range m.Aliases {
			modelIndex[alias] = m
		}
	}
}

// GetModel returns the model definition for a given model ID or alias.
// Returns nil if the model is not found.
func GetModel(modelID string) *Model {
	return modelIndex[modelID]
}

// ResolveModel maps a short alias to the id the provider expects.
// Unknown names pass through unchanged so any upstream model can be used.
func ResolveModel(name string) string {
	if m := GetModel(name); m != nil {
		return m.ID
	}
	return name
}

// GetDefaultModel returns the default model for a provider.
func GetDefaultModel(providerID string) *Model {
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		if m.ProviderID == providerID && m.IsDefault {
			return m
		}
	}
	return nil
}

// GetDefaultModelID returns the default model ID for a provider.
func GetDefaultModelID(providerID string) string {
	if m := GetDefaultModel(providerID); m != nil {
		return m.ID
	}
	return ""
}

// InferProvider attempts to determine the provider from a model name.
func InferProvider(modelID string) (string, bool) {
	if m := GetModel(modelID); m != nil {
		return m.ProviderID, true
	}

	switch {
	case strings.Contains(modelID, "/"):
		return ProviderOpenRouter, true
	case strings.HasPrefix(modelID, "gpt-"), strings.HasPrefix(modelID, "o1"), strings.HasPrefix(modelID, "o3"):
		return ProviderOpenAI, true
	case strings.HasPrefix(modelID, "claude-"):
		return ProviderAnthropic, true
	case strings.HasPrefix(modelID, "gemini-"):
		return ProviderGemini, true
	case strings.HasPrefix(modelID, "llama"), strings.HasPrefix(modelID, "mistral"), strings.HasPrefix(modelID, "phi"):
		return ProviderOllama, true
	}
	return "", false
}

// ModelOption is one row of the models listing.
type ModelOption struct {
	ID        string   `json:"id"`
	Aliases   []string `json:"aliases,omitempty"`
	PriceInfo string   `json:"price"`
	IsDefault bool     `json:"default"`
}

// GetModelsForProvider returns the models for a provider, default first.
func GetModelsForProvider(providerID string) []ModelOption {
	var options []ModelOption
	for _, m := range ModelRegistry {
		if m.ProviderID != providerID {
			continue
		}
		options = append(options, ModelOption{
			ID:        m.ID,
			Aliases:   m.Aliases,
			PriceInfo: formatPriceInfo(m.InputPer1M, m.OutputPer1M),
			IsDefault: m.IsDefault,
		})
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].IsDefault != options[j].IsDefault {
			return options[i].IsDefault
		}
		return options[i].ID < options[j].ID
	})
	return options
}

func formatPriceInfo(input, output float64) string {
	if input == 0 && output == 0 {
		return "local/free"
	}
	return fmt.Sprintf("$%.2f/$%.2f per 1M tokens", input, output)
}

// CalculateCost calculates cost in USD for token usage.
func CalculateCost(modelID string, inputTokens, outputTokens int) float64 {
	m := GetModel(modelID)
	if m == nil {
		return 0
	}
	inputCost := float64(inputTokens) / 1_000_000 * m.InputPer1M
	outputCost := float64(outputTokens) / 1_000_000 * m.OutputPer1M
	return inputCost + outputCost
}
