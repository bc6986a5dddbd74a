package generators

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/josephgoksu/monadgen/internal/generation"
)

// MetaValue is a fixed top-level field stamped on every result.
type MetaValue struct {
	Key   string
	Value any
}

// Spec is everything that distinguishes one list generator from another.
type Spec struct {
	Info Info

	// Prefix names persisted artifacts: "{Prefix}_{timestamp}.{ext}".
	Prefix   string
	ItemKeys []string
	CountKey string
	ItemsKey string

	DefaultCount int
	MaxTokens    int
	Temperature  float64
	// Tune adjusts the temperature from the caller's options.
	Tune func(opts generation.Options, temperature float64) float64

	System string
	// Prompt is executed with the map returned by PromptData.
	Prompt     *template.Template
	PromptData func(opts generation.Options, count int) map[string]any

	Meta   []MetaValue
	Layout *Layout
}

// Base runs a Spec: render prompt, complete, normalize, wrap in a Result.
type Base struct {
	spec Spec
	deps Deps
}

// NewBase binds spec to deps.
func NewBase(spec Spec, deps Deps) *Base {
	return &Base{spec: spec, deps: deps}
}

func (b *Base) ID() string { return b.spec.Info.ID }

func (b *Base) Info() Info { return b.spec.Info }

// Spec returns the generator's definition.
func (b *Base) Spec() Spec { return b.spec }

// Generate asks for num_items items and normalizes whatever shape comes back.
func (b *Base) Generate(ctx context.Context, opts generation.Options) (*generation.Result, error) {
	count := opts.Int(generation.OptNumItems, b.spec.DefaultCount)
	if count <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", ErrMissingInput, generation.OptNumItems)
	}

	prompt, err := b.renderPrompt(opts, count)
	if err != nil {
		return nil, err
	}

	temperature := b.spec.Temperature
	if b.spec.Tune != nil {
		temperature = b.spec.Tune(opts, temperature)
	}

	completion, err := b.deps.complete(ctx, call{
		generator:   b.ID(),
		model:       opts.String(generation.OptModel, ""),
		system:      b.spec.System,
		prompt:      prompt,
		maxTokens:   b.spec.MaxTokens,
		temperature: temperature,
	})
	if err != nil {
		return nil, err
	}

	keys := b.spec.ItemKeys
	if len(keys) == 0 {
		keys = generation.DefaultItemKeys
	}
	items, err := generation.ParseItems(completion.Text, keys...)
	if err != nil {
		return nil, err
	}

	result := generation.NewResult(completion.Model, b.deps.now())
	for _, m := range b.spec.Meta {
		result.SetField(m.Key, m.Value)
	}
	result.CountKey = b.spec.CountKey
	result.ItemsKey = b.spec.ItemsKey
	result.Items = items
	result.Usage = usageOf(completion)
	return result, nil
}

// Persist writes result under the generator's prefix.
func (b *Base) Persist(result *generation.Result, format generation.Format) (string, error) {
	return b.deps.Store.Save(result, b.spec.Prefix, b.spec.Layout.Render, format)
}

func (b *Base) renderPrompt(opts generation.Options, count int) (string, error) {
	data := map[string]any{"Count": count}
	if b.spec.PromptData != nil {
		data = b.spec.PromptData(opts, count)
	}
	return render(b.spec.Prompt, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
