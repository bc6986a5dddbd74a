package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrEmptyResponse is returned when the endpoint answers with no text.
var ErrEmptyResponse = errors.New("empty response from LLM")

// Request is one system+user exchange.
type Request struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Completion is the raw text plus accounting for one request.
type Completion struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Cost             float64
}

// Completer sends a prompt to the completion endpoint and returns raw text.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// ModelFactory builds a chat model for one request.
type ModelFactory func(ctx context.Context, cfg Config, params Params) (model.BaseChatModel, error)

// ChatCompleter is the Eino-backed Completer. A chat model is built per call
// because tuning parameters vary by generator and model.
type ChatCompleter struct {
	Config  Config
	Factory ModelFactory
}

// NewChatCompleter returns a Completer for cfg.
func NewChatCompleter(cfg Config) *ChatCompleter {
	return &ChatCompleter{Config: cfg, Factory: NewChatModel}
}

// Complete blocks until the endpoint answers. There is no retry.
func (c *ChatCompleter) Complete(ctx context.Context, req Request) (*Completion, error) {
	cfg := c.Config
	if req.Model != "" {
		cfg.Model = ResolveModel(req.Model)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("no model configured for provider %s", cfg.Provider)
	}

	params := CompletionParams(cfg.Model, req.MaxTokens, req.Temperature)

	factory := c.Factory
	if factory == nil {
		factory = NewChatModel
	}
	chatModel, err := factory(ctx, cfg, params)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	messages := make([]*schema.Message, 0, 2)
	if req.System != "" {
		messages = append(messages, schema.SystemMessage(req.System))
	}
	messages = append(messages, schema.UserMessage(req.User))

	resp, err := chatModel.Generate(ctx, messages, params.Options()...)
	if err != nil {
		return nil, fmt.Errorf("llm generation failed: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, ErrEmptyResponse
	}

	out := &Completion{Text: resp.Content, Model: cfg.Model}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		out.PromptTokens = resp.ResponseMeta.Usage.PromptTokens
		out.CompletionTokens = resp.ResponseMeta.Usage.CompletionTokens
		out.Cost = CalculateCost(cfg.Model, out.PromptTokens, out.CompletionTokens)
	}
	return out, nil
}
