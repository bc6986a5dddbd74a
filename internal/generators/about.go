package generators

import (
	"context"
	"fmt"
	"io"
	"text/template"

	"github.com/josephgoksu/monadgen/internal/generation"
)

const (
	aboutPrefix       = "about_page"
	aboutDefaultTopic = "a cultural/intellectual newsletter"
)

var aboutLengths = map[string]int{"short": 200, "medium": 400, "long": 600}

var aboutPrompt = template.Must(template.New("substack_about").Parse(PromptAbout))

// About writes a Substack About page. With a demographic label and a style
// name it targets that reader in that voice; otherwise it works from the
// topic alone.
type About struct {
	deps Deps
}

// NewAbout returns the About page generator.
func NewAbout(deps Deps) *About {
	return &About{deps: deps}
}

func (a *About) ID() string { return IDSubstackAbout }

func (a *About) Info() Info {
	return Info{
		ID:          a.ID(),
		Name:        "About Page",
		Platform:    PlatformSubstack,
		Category:    CategoryContent,
		Description: "Conversion-focused About page, optionally targeted",
	}
}

func (a *About) Generate(ctx context.Context, opts generation.Options) (*generation.Result, error) {
	length := opts.String(generation.OptLength, "medium")
	words, ok := aboutLengths[length]
	if !ok {
		words = aboutLengths["medium"]
	}
	topic := opts.String(generation.OptTopic, "")

	demographic, style, err := a.targets(opts)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"Targeted": demographic != nil && style != nil,
		"Words":    words,
		"Topic":    topic,
	}
	if demographic != nil && style != nil {
		data["Demographic"] = indentJSON(demographic)
		data["Style"] = indentJSON(style)
		if topic == "" {
			data["Topic"] = "inferred from demographic interests"
		}
	} else if topic == "" {
		data["Topic"] = aboutDefaultTopic
	}
	prompt, err := render(aboutPrompt, data)
	if err != nil {
		return nil, err
	}

	completion, err := a.deps.complete(ctx, call{
		generator:   a.ID(),
		model:       opts.String(generation.OptModel, ""),
		system:      SystemPromptAbout,
		prompt:      prompt,
		maxTokens:   3000,
		temperature: 0.75,
	})
	if err != nil {
		return nil, err
	}

	page, err := generation.ParseObject(completion.Text)
	if err != nil {
		return nil, err
	}

	result := generation.NewResult(completion.Model, a.deps.now())
	result.SetField("target_length", length)
	result.SetField("target_words", words)
	result.SetField("used_demographic", demographic != nil)
	result.SetField("used_style", style != nil)
	if topic != "" {
		result.SetField("newsletter_topic", topic)
	} else {
		result.SetField("newsletter_topic", nil)
	}
	for pair := page.Oldest(); pair != nil; pair = pair.Next() {
		result.SetField(pair.Key, pair.Value)
	}
	result.Usage = usageOf(completion)
	return result, nil
}

func (a *About) targets(opts generation.Options) (*generation.Record, *generation.Record, error) {
	label := opts.String(generation.OptDemographic, "")
	name := opts.String(generation.OptStyle, "")
	if label == "" && name == "" {
		return nil, nil, nil
	}

	inputs, err := LoadInputs(a.deps.Store)
	if err != nil {
		return nil, nil, err
	}
	var demographic, style *generation.Record
	if label != "" {
		if demographic, err = inputs.Demographic(label); err != nil {
			return nil, nil, err
		}
	}
	if name != "" {
		if style, err = inputs.Style(name); err != nil {
			return nil, nil, err
		}
	}
	return demographic, style, nil
}

func (a *About) SuccessMessage(*generation.Result) string {
	return "Generated about page"
}

func (a *About) Persist(result *generation.Result, format generation.Format) (string, error) {
	return a.deps.Store.Save(result, aboutPrefix, formatAbout, format)
}

func formatAbout(r *generation.Result, w io.Writer) error {
	mw := generation.NewMarkdownWriter(w)
	meta := r.Meta

	mw.Header("Substack About Page", r, "")
	mw.Field(meta, "newsletter_topic", "Newsletter Topic")
	mw.Line(fmt.Sprintf("**Target Length:** %s (~%s words)",
		generation.StringField(meta, "target_length", ""),
		generation.StringField(meta, "target_words", "")))
	mw.Line("**Actual Word Count:** " + generation.StringField(meta, "word_count", "N/A"))
	mw.Blank()
	mw.Rule()

	mw.Heading(2, "THE ABOUT PAGE")
	mw.Line(generation.StringField(meta, "about_page_text", ""))
	mw.Blank()
	mw.Rule()

	mw.Heading(2, "GENERATION STRATEGY")
	mw.Field(meta, "hook_strategy", "")
	mw.Field(meta, "positioning_angle", "")
	mw.Field(meta, "conversion_elements", "")
	mw.Field(meta, "authenticity_notes", "")
	mw.Field(meta, "target_demographic_inferred", "Inferred Target Demographic")
	if used, _ := r.Field("used_demographic"); used == true {
		mw.Line("*Generated using targeted reader demographic*")
		mw.Blank()
	}
	if used, _ := r.Field("used_style"); used == true {
		mw.Line("*Generated using specific writing style*")
		mw.Blank()
	}
	return mw.Err()
}
