package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModelForProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "gpt-4o"},
		{"openrouter", "anthropic/claude-3.5-sonnet"},
		{"anthropic", "claude-3-5-sonnet-latest"},
		{"gemini", "gemini-2.0-flash"},
		{"ollama", "llama3.2"},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultModelForProvider(tt.provider))
		})
	}
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "anthropic/claude-3.5-sonnet", ResolveModel("claude-3.5-sonnet"))
	assert.Equal(t, "moonshotai/kimi-k2-0905", ResolveModel("kimi-k2"))
	assert.Equal(t, "o3-mini-2025-01-31", ResolveModel("o3-mini"))
	assert.Equal(t, "gpt-4o", ResolveModel("gpt-4o"))
	assert.Equal(t, "some/unlisted-model", ResolveModel("some/unlisted-model"))
}

func TestInferProviderFromModel(t *testing.T) {
	tests := []struct {
		model        string
		wantProvider string
		wantOk       bool
	}{
		{"gpt-4o", ProviderOpenAI, true},
		{"o3", ProviderOpenAI, true},
		{"o1-preview", ProviderOpenAI, true},
		{"kimi-k2", ProviderOpenRouter, true},
		{"meta-llama/llama-3.1-70b-instruct", ProviderOpenRouter, true},
		{"x-ai/grok-2", ProviderOpenRouter, true},
		{"claude-3-opus-latest", ProviderAnthropic, true},
		{"claude-sonnet-4-5", ProviderAnthropic, true},
		{"gemini-1.5-pro", ProviderGemini, true},
		{"llama3.2", ProviderOllama, true},
		{"phi3", ProviderOllama, true},
		{"some-random-model", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			provider, ok := InferProviderFromModel(tt.model)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantProvider, provider)
		})
	}
}

func TestGetModelsForProvider(t *testing.T) {
	models := GetModelsForProvider(ProviderOpenRouter)
	require.NotEmpty(t, models)
	assert.True(t, models[0].IsDefault, "default model sorts first")
	assert.Equal(t, "anthropic/claude-3.5-sonnet", models[0].ID)

	for i := 2; i < len(models); i++ {
		assert.Less(t, models[i-1].ID, models[i].ID)
	}

	local := GetModelsForProvider(ProviderOllama)
	require.Len(t, local, 1)
	assert.Equal(t, "local/free", local[0].PriceInfo)
}

func TestCalculateCost(t *testing.T) {
	assert.InDelta(t, 2.50+10.00, CalculateCost("gpt-4o", 1_000_000, 1_000_000), 1e-9)
	assert.InDelta(t, 0.003+0.015, CalculateCost("claude-3.5-sonnet", 1000, 1000), 1e-9)
	assert.Zero(t, CalculateCost("unknown", 1000, 1000))
	assert.Zero(t, CalculateCost("llama3.2", 1000, 1000))
}

func TestModelRegistry_NoDuplicateKeys(t *testing.T) {
	seen := map[string]string{}
	for _, m := range ModelRegistry {
		for _, key := range append([]string{m.ID}, m.Aliases...) {
			if prev, ok := seen[key]; ok {
				t.Errorf("%q registered by both %s and %s", key, prev, m.ID)
			}
			seen[key] = m.ID
		}
	}
}
