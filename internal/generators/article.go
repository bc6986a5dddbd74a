package generators

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/josephgoksu/monadgen/internal/generation"
)

const (
	articlePrefix = "article"
	slugLength    = 30

	// AuthenticityEmbedded records that the human-voice constraints are part
	// of the prompt rather than a separate validation pass.
	AuthenticityEmbedded = "EMBEDDED"
)

var articleLengths = map[string]int{"short": 1500, "medium": 3000, "long": 5000}

var articlePrompt = template.Must(template.New("substack_article").Parse(PromptArticle))

// Article writes a long-form piece for a stored demographic in a stored
// writing style. The completion is raw text, not JSON.
type Article struct {
	deps Deps
}

// NewArticle returns the article generator.
func NewArticle(deps Deps) *Article {
	return &Article{deps: deps}
}

func (a *Article) ID() string { return IDSubstackArticle }

func (a *Article) Info() Info {
	return Info{
		ID:          a.ID(),
		Name:        "Article Writer",
		Platform:    PlatformSubstack,
		Category:    CategoryContent,
		Description: "Long-form article from a stored demographic and style",
	}
}

func (a *Article) Generate(ctx context.Context, opts generation.Options) (*generation.Result, error) {
	label := opts.String(generation.OptDemographic, "")
	name := opts.String(generation.OptStyle, "")
	topic := opts.String(generation.OptTopic, "")
	if label == "" || name == "" || topic == "" {
		return nil, fmt.Errorf("%w: demographic_label, style_name, topic", ErrMissingInput)
	}

	inputs, err := LoadInputs(a.deps.Store)
	if err != nil {
		return nil, err
	}
	demographic, err := inputs.Demographic(label)
	if err != nil {
		return nil, err
	}
	style, err := inputs.Style(name)
	if err != nil {
		return nil, err
	}

	words, ok := articleLengths[opts.String(generation.OptWordCount, "medium")]
	if !ok {
		words = articleLengths["medium"]
	}

	prompt, err := render(articlePrompt, map[string]any{
		"Demographic":   indentJSON(demographic),
		"Style":         indentJSON(style),
		"Topic":         topic,
		"Words":         words,
		"Interests":     interests(demographic),
		"Psychographic": generation.StringField(demographic, "psychographic_profile", ""),
		"Tone":          generation.StringField(style, "tone_voice", ""),
		"Structure":     generation.StringField(style, "sentence_structure", ""),
		"Vocabulary":    generation.StringField(style, "vocabulary", ""),
	})
	if err != nil {
		return nil, err
	}

	completion, err := a.deps.complete(ctx, call{
		generator:   a.ID(),
		model:       opts.String(generation.OptModel, ""),
		system:      SystemPromptArticle,
		prompt:      prompt,
		maxTokens:   8000,
		temperature: 0.9,
	})
	if err != nil {
		return nil, err
	}

	text := generation.StripFences(completion.Text)

	result := generation.NewResult(completion.Model, a.deps.now())
	result.SetField("target_demographic", generation.StringField(demographic, "label", "Unknown Demographic"))
	result.SetField("writing_style", generation.StringField(style, "name", "Unknown Style"))
	result.SetField("topic", topic)
	result.SetField("target_word_count", words)
	result.SetField("actual_word_count", len(strings.Fields(text)))
	result.SetField("authenticity_validation", AuthenticityEmbedded)
	result.SetField("article", text)
	result.Usage = usageOf(completion)
	return result, nil
}

// interests lists the first five auxiliary interests.
func interests(demographic *generation.Record) string {
	v, _ := demographic.Get("auxiliary_interests")
	if list, ok := v.([]any); ok && len(list) > 5 {
		v = list[:5]
	}
	return generation.Stringify(v)
}

// ArticlePrefix names an article's artifacts after its demographic and style.
func ArticlePrefix(r *generation.Result) string {
	demo, _ := r.Field("target_demographic")
	style, _ := r.Field("writing_style")
	return fmt.Sprintf("%s_%s_%s", articlePrefix,
		generation.SafeIdentifier(generation.Stringify(demo), slugLength),
		generation.SafeIdentifier(generation.Stringify(style), slugLength))
}

func (a *Article) SuccessMessage(result *generation.Result) string {
	words, _ := result.Field("actual_word_count")
	return fmt.Sprintf("Generated %s word article", generation.Stringify(words))
}

func (a *Article) Persist(result *generation.Result, format generation.Format) (string, error) {
	return a.deps.Store.Save(result, ArticlePrefix(result), formatArticle, format)
}

func formatArticle(r *generation.Result, w io.Writer) error {
	mw := generation.NewMarkdownWriter(w)
	meta := r.Meta
	field := func(key string) string { return generation.StringField(meta, key, "") }

	mw.Line("---")
	mw.Line("GENERATION METADATA")
	mw.Line("Target Demographic: " + field("target_demographic"))
	mw.Line("Writing Style: " + field("writing_style"))
	mw.Line("Topic: " + field("topic"))
	mw.Line("Target Word Count: " + field("target_word_count"))
	mw.Line("Actual Word Count: " + field("actual_word_count"))
	mw.Line("Authenticity Validation: " + field("authenticity_validation"))
	mw.Line("Model: " + r.ModelUsed)
	mw.Line("Generated: " + r.GeneratedAt)
	mw.Line("---")
	mw.Blank()
	mw.Line(field("article"))
	mw.Blank()
	mw.Rule()
	mw.Line("*Generated with embedded human authenticity validation.*")
	return mw.Err()
}
