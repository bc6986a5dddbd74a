package llm

import (
	"strings"

	"github.com/cloudwego/eino/components/model"
)

// modelsWithoutJSONMode reject the json_object response format.
var modelsWithoutJSONMode = []string{"moonshot", "kimi", "deepseek", "qwen"}

// Params are the per-request tuning knobs, already adapted to the model family.
type Params struct {
	MaxTokens int

	// UseCompletionTokens sends the budget as max_completion_tokens.
	// Reasoning models (o3 family) accept only that name.
	UseCompletionTokens bool

	// Temperature is nil when the model does not accept one.
	Temperature *float32

	// JSONMode asks the endpoint for a JSON object response.
	JSONMode bool
}

// CompletionParams adapts a token budget and temperature to what model accepts.
func CompletionParams(modelID string, maxTokens int, temperature float64) Params {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	name := strings.ToLower(modelID)

	p := Params{MaxTokens: maxTokens, JSONMode: true}
	if strings.Contains(name, "o3") {
		p.UseCompletionTokens = true
	} else {
		t := float32(temperature)
		p.Temperature = &t
	}

	for _, family := range modelsWithoutJSONMode {
		if strings.Contains(name, family) {
			p.JSONMode = false
			break
		}
	}
	return p
}

// Options converts p into per-call eino options. The completion-token budget
// is set on the model config instead, since eino has no call option for it.
func (p Params) Options() []model.Option {
	var opts []model.Option
	if p.Temperature != nil {
		opts = append(opts, model.WithTemperature(*p.Temperature))
	}
	if !p.UseCompletionTokens && p.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(p.MaxTokens))
	}
	return opts
}
