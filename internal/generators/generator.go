// Package generators holds the content generators. Each one owns its prompt
// and its markdown layout; everything else (completion, normalization,
// persistence) goes through the shared generation and llm packages.
package generators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/josephgoksu/monadgen/internal/llm"
	"github.com/josephgoksu/monadgen/internal/logger"
)

var (
	// ErrUnknownGenerator is returned by Registry.Lookup.
	ErrUnknownGenerator = errors.New("unknown generator")
	// ErrMissingInput marks options a generator cannot run without.
	ErrMissingInput = errors.New("missing required input")
)

// Ids of the composed generators, which take stored inputs instead of a count.
const (
	IDSubstackAbout   = "substack_about"
	IDSubstackArticle = "substack_article"
)

// Platform and category values used to group generators for display.
const (
	PlatformTwitter  = "twitter"
	PlatformSubstack = "substack"

	CategoryDemographics = "demographics"
	CategoryContent      = "content"
)

// Info describes a generator for listings.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Generator produces one Result per call and knows how to write it.
type Generator interface {
	ID() string
	Info() Info
	Generate(ctx context.Context, opts generation.Options) (*generation.Result, error)
	Persist(result *generation.Result, format generation.Format) (string, error)
}

// Deps are the collaborators every generator shares.
type Deps struct {
	Completer    llm.Completer
	Store        *generation.Store
	DefaultModel string
	Now          func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// successReporter is implemented by generators whose success message is not
// an item count.
type successReporter interface {
	SuccessMessage(result *generation.Result) string
}

// SuccessMessage is what every front-end reports after g ran.
func SuccessMessage(g Generator, result *generation.Result) string {
	if sr, ok := g.(successReporter); ok {
		return sr.SuccessMessage(result)
	}
	return fmt.Sprintf("Generated %d items", result.Count())
}

// Job adapts g to the orchestrator.
func Job(g Generator) generation.Job {
	return generation.Job{
		Name:     g.ID(),
		Generate: g.Generate,
		Persist:  g.Persist,
		Describe: func(result *generation.Result) string {
			return SuccessMessage(g, result)
		},
	}
}

// call describes a single completion request.
type call struct {
	generator   string
	model       string
	system      string
	prompt      string
	maxTokens   int
	temperature float64
}

func (d Deps) complete(ctx context.Context, c call) (*llm.Completion, error) {
	if d.Completer == nil {
		return nil, fmt.Errorf("%s: no completer configured", c.generator)
	}
	model := c.model
	if model == "" {
		model = d.DefaultModel
	}

	logger.RecordGenerator(ctx, c.generator)
	logger.RecordPrompt(ctx, c.prompt)

	completion, err := d.Completer.Complete(ctx, llm.Request{
		Model:       model,
		System:      c.system,
		User:        c.prompt,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, err
	}
	if completion.Model == "" {
		completion.Model = model
	}
	return completion, nil
}

func usageOf(c *llm.Completion) generation.Usage {
	return generation.Usage{
		PromptTokens:     c.PromptTokens,
		CompletionTokens: c.CompletionTokens,
		Cost:             c.Cost,
	}
}
