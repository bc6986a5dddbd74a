package server

import "github.com/josephgoksu/monadgen/internal/generation"

// DefaultNumItems is used when a generate request leaves num_items unset.
const DefaultNumItems = 15

// GenerateRequest is the payload for /api/generate
type GenerateRequest struct {
	GeneratorType string `json:"generator_type" validate:"required"`
	NumItems      *int   `json:"num_items" validate:"omitempty,min=1,max=100"`
	OutputFormat  string `json:"output_format" validate:"omitempty,oneof=markdown json"`
	Model         string `json:"model"`
	// StructureMode only applies to twitter_aphorisms.
	StructureMode string `json:"structure_mode" validate:"omitempty,oneof=diverse legacy"`
}

func (r GenerateRequest) options() generation.Options {
	n := DefaultNumItems
	if r.NumItems != nil {
		n = *r.NumItems
	}
	opts := generation.Options{generation.OptNumItems: n}
	if r.Model != "" {
		opts[generation.OptModel] = r.Model
	}
	if r.StructureMode != "" {
		opts[generation.OptStructureMode] = r.StructureMode
	}
	return opts
}

// GenerateResponse is the response for /api/generate
type GenerateResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	OutputFiles []string `json:"output_files"`
	Timestamp   string   `json:"timestamp"`
	TokensUsed  int      `json:"tokens_used"`
	Cost        float64  `json:"cost"`
}

// ArticleRequest is the payload for /api/article/generate
type ArticleRequest struct {
	DemographicLabel string `json:"demographic_label" validate:"required"`
	StyleName        string `json:"style_name" validate:"required"`
	Topic            string `json:"topic" validate:"required"`
	WordCount        string `json:"word_count" validate:"omitempty,oneof=short medium long"`
	Model            string `json:"model"`
}

func (r ArticleRequest) options() generation.Options {
	wc := r.WordCount
	if wc == "" {
		wc = "medium"
	}
	return generation.Options{
		generation.OptDemographic: r.DemographicLabel,
		generation.OptStyle:       r.StyleName,
		generation.OptTopic:       r.Topic,
		generation.OptWordCount:   wc,
		generation.OptModel:       r.Model,
	}
}

// ArticleResponse is the response for /api/article/generate
type ArticleResponse struct {
	Status            string   `json:"status"`
	Message           string   `json:"message"`
	OutputFiles       []string `json:"output_files"`
	Timestamp         string   `json:"timestamp"`
	WordCount         any      `json:"word_count"`
	TargetDemographic string   `json:"target_demographic"`
	WritingStyle      string   `json:"writing_style"`
}

// AboutRequest is the payload for /api/about/generate. Demographic and style
// are optional; when both resolve the page is targeted.
type AboutRequest struct {
	DemographicLabel string `json:"demographic_label"`
	StyleName        string `json:"style_name"`
	Topic            string `json:"topic"`
	Length           string `json:"length" validate:"omitempty,oneof=short medium long"`
	Model            string `json:"model"`
}

func (r AboutRequest) options() generation.Options {
	return generation.Options{
		generation.OptDemographic: r.DemographicLabel,
		generation.OptStyle:       r.StyleName,
		generation.OptTopic:       r.Topic,
		generation.OptLength:      r.Length,
		generation.OptModel:       r.Model,
	}
}

// AboutResponse is the response for /api/about/generate
type AboutResponse struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	OutputFiles     []string `json:"output_files"`
	Timestamp       string   `json:"timestamp"`
	WordCount       any      `json:"word_count"`
	UsedDemographic bool     `json:"used_demographic"`
	UsedStyle       bool     `json:"used_style"`
}

// OutputsResponse lists persisted artifacts.
type OutputsResponse struct {
	Files []generation.Artifact `json:"files"`
}

// StatusResponse is the response for /api/status
type StatusResponse struct {
	Status              string `json:"status"`
	Timestamp           string `json:"timestamp"`
	GeneratorsAvailable int    `json:"generators_available"`
	// OpenAIKeySet reports whether the selected provider has credentials.
	OpenAIKeySet bool   `json:"openai_key_set"`
	Provider     string `json:"provider,omitempty"`
	Version      string `json:"version,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}
