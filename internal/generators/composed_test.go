package generators

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/josephgoksu/monadgen/internal/generation"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	storedDemographics = `{"generated_at":"x","model_used":"m","num_demographics":2,"demographics":[
		{"label":"The Burned-Out Social Worker","auxiliary_interests":["a","b","c","d","e","f"],"psychographic_profile":"tired but curious"},
		{"label":"Train Nerd"}]}`
	storedStyles = `{"num_styles":1,"styles":[{"name":"Minimalist Precision","tone_voice":"flat","sentence_structure":"short","vocabulary":"plain"}]}`
)

func seedInputs(t *testing.T, deps Deps) {
	t.Helper()
	fs := deps.Store.Fs
	require.NoError(t, afero.WriteFile(fs, "outputs/reader_demographics_20250101000000.json", []byte(storedDemographics), 0o644))
	require.NoError(t, afero.WriteFile(fs, "outputs/writing_styles_20250101000000.json", []byte(storedStyles), 0o644))
	require.NoError(t, afero.WriteFile(fs, "outputs/writing_styles_broken.json", []byte("{"), 0o644))
}

func TestLoadInputs(t *testing.T) {
	deps := testDeps(&fakeCompleter{})

	in, err := LoadInputs(deps.Store)
	require.NoError(t, err)
	assert.Empty(t, in.Demographics)
	assert.False(t, in.CanGenerate)

	seedInputs(t, deps)
	in, err = LoadInputs(deps.Store)
	require.NoError(t, err)

	require.Len(t, in.Demographics, 2)
	assert.Equal(t, "The Burned-Out Social Worker", in.Demographics[0].Label)
	assert.Equal(t, "reader_demographics_20250101000000.json", in.Demographics[0].SourceFile)
	require.Len(t, in.Styles, 1)
	assert.Equal(t, "Minimalist Precision", in.Styles[0].Name)
	assert.True(t, in.CanGenerate)

	_, err = in.Demographic("Nobody")
	assert.ErrorIs(t, err, ErrInputNotFound)
	_, err = in.Style("Nothing")
	assert.ErrorIs(t, err, ErrInputNotFound)
}

func TestArticle_Generate(t *testing.T) {
	fc := &fakeCompleter{text: "# A Title\n\nOne two three four."}
	deps := testDeps(fc)
	seedInputs(t, deps)
	g := NewArticle(deps)

	res, err := g.Generate(context.Background(), generation.Options{
		generation.OptDemographic: "The Burned-Out Social Worker",
		generation.OptStyle:       "Minimalist Precision",
		generation.OptTopic:       "rest",
		generation.OptWordCount:   "short",
	})
	require.NoError(t, err)

	req := fc.last()
	assert.Equal(t, 8000, req.MaxTokens)
	assert.InDelta(t, 0.9, req.Temperature, 1e-9)
	assert.Contains(t, req.User, "TARGET LENGTH: ~1500 words")
	assert.Contains(t, req.User, "speaks to their interests (a, b, c, d, e)")
	assert.Contains(t, req.User, "tone and voice (flat)")

	field := func(key string) string { return generation.StringField(res.Meta, key, "") }
	assert.Equal(t, "The Burned-Out Social Worker", field("target_demographic"))
	assert.Equal(t, "Minimalist Precision", field("writing_style"))
	assert.Equal(t, "1500", field("target_word_count"))
	assert.Equal(t, "7", field("actual_word_count"))
	assert.Equal(t, AuthenticityEmbedded, field("authenticity_validation"))

	path, err := g.Persist(res, generation.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "outputs/article_the_burned-out_social_worker_minimalist_precision_20250101120000.md", path)

	md, err := afero.ReadFile(deps.Store.Fs, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "---\nGENERATION METADATA\nTarget Demographic: The Burned-Out Social Worker\n"))
	assert.Contains(t, string(md), "# A Title\n\nOne two three four.\n")
}

func TestArticle_Inputs(t *testing.T) {
	fc := &fakeCompleter{text: "body"}
	deps := testDeps(fc)
	seedInputs(t, deps)
	g := NewArticle(deps)

	_, err := g.Generate(context.Background(), generation.Options{generation.OptTopic: "x"})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = g.Generate(context.Background(), generation.Options{
		generation.OptDemographic: "Nobody",
		generation.OptStyle:       "Minimalist Precision",
		generation.OptTopic:       "x",
	})
	assert.ErrorIs(t, err, ErrInputNotFound)
	assert.Empty(t, fc.requests)
}

func TestArticlePrefix_Truncates(t *testing.T) {
	res := generation.NewResult("m", fixedNow)
	res.SetField("target_demographic", strings.Repeat("Long Label ", 10))
	res.SetField("writing_style", "Style/With:Odd*Chars")

	prefix := ArticlePrefix(res)
	parts := strings.SplitN(strings.TrimPrefix(prefix, "article_"), "_style", 2)
	assert.Len(t, []rune(parts[0]), slugLength)
	assert.True(t, strings.HasSuffix(prefix, "_stylewithoddchars"))
}

func TestAbout_Standalone(t *testing.T) {
	fc := &fakeCompleter{text: `{"about_page_text":"Hello reader.","hook_strategy":"direct","word_count":2}`}
	deps := testDeps(fc)
	g := NewAbout(deps)

	res, err := g.Generate(context.Background(), generation.Options{generation.OptLength: "short"})
	require.NoError(t, err)

	req := fc.last()
	assert.Equal(t, 3000, req.MaxTokens)
	assert.InDelta(t, 0.75, req.Temperature, 1e-9)
	assert.Contains(t, req.User, "for a newsletter about: a cultural/intellectual newsletter")
	assert.Contains(t, req.User, "~200 words")
	assert.NotContains(t, req.User, "TARGET READER DEMOGRAPHIC")

	keys := []string{}
	for pair := res.Record().Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{
		"generated_at", "model_used", "target_length", "target_words", "used_demographic",
		"used_style", "newsletter_topic", "about_page_text", "hook_strategy", "word_count",
	}, keys)

	topic, ok := res.Field("newsletter_topic")
	assert.True(t, ok)
	assert.Nil(t, topic)

	var buf bytes.Buffer
	require.NoError(t, formatAbout(res, &buf))
	out := buf.String()
	assert.Contains(t, out, "**Target Length:** short (~200 words)\n")
	assert.Contains(t, out, "**Actual Word Count:** 2\n")
	assert.Contains(t, out, "## THE ABOUT PAGE\n\nHello reader.\n")
	assert.Contains(t, out, "**Hook Strategy:** direct\n")
	assert.NotContains(t, out, "targeted reader demographic")
}

func TestAbout_Targeted(t *testing.T) {
	fc := &fakeCompleter{text: `{"about_page_text":"Hi."}`}
	deps := testDeps(fc)
	seedInputs(t, deps)
	g := NewAbout(deps)

	res, err := g.Generate(context.Background(), generation.Options{
		generation.OptDemographic: "Train Nerd",
		generation.OptStyle:       "Minimalist Precision",
		generation.OptTopic:       "rail",
	})
	require.NoError(t, err)

	req := fc.last()
	assert.Contains(t, req.User, "TARGET READER DEMOGRAPHIC:")
	assert.Contains(t, req.User, `"label": "Train Nerd"`)
	assert.Contains(t, req.User, "NEWSLETTER TOPIC: rail")
	assert.Contains(t, req.User, "~400 words")

	used, _ := res.Field("used_demographic")
	assert.Equal(t, true, used)

	_, err = g.Generate(context.Background(), generation.Options{generation.OptStyle: "Unknown"})
	assert.ErrorIs(t, err, ErrInputNotFound)
}

func TestAbout_MalformedObject(t *testing.T) {
	g := NewAbout(testDeps(&fakeCompleter{text: `["not","an","object"]`}))

	_, err := g.Generate(context.Background(), nil)
	var shape *generation.UnexpectedShapeError
	assert.ErrorAs(t, err, &shape)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(testDeps(&fakeCompleter{}))

	assert.Equal(t, 8, r.Len())
	assert.Equal(t, []string{
		"substack_about", "substack_article", "substack_readers", "substack_styles",
		"twitter_aphorisms", "twitter_lived", "twitter_soft_hard", "twitter_wizard",
	}, r.IDs())

	g, err := r.Lookup("twitter_lived")
	require.NoError(t, err)
	assert.Equal(t, "Lived Experience (Phenomenological)", g.Info().Name)

	_, err = r.Lookup("linkedin_bros")
	assert.ErrorIs(t, err, ErrUnknownGenerator)

	grouped := r.Grouped()
	assert.Equal(t, []Entry{
		{ID: "twitter_wizard", Name: "The Wizard (Implementation-Level)"},
		{ID: "twitter_lived", Name: "Lived Experience (Phenomenological)"},
		{ID: "twitter_soft_hard", Name: "Soft+Hard+Algorithmic"},
	}, grouped[PlatformTwitter][CategoryDemographics])
	assert.Equal(t, []Entry{{ID: "twitter_aphorisms", Name: "X Aphorisms (Engagement-Optimized)"}},
		grouped[PlatformTwitter][CategoryContent])
	assert.Len(t, grouped[PlatformSubstack][CategoryContent], 3)
}

func TestJob_RunsThroughOrchestrator(t *testing.T) {
	fc := &fakeCompleter{text: `{"styles":[{"name":"Baroque"}]}`}
	deps := testDeps(fc)
	g := NewBase(stylesSpec(), deps)

	orch := &generation.Orchestrator{Preflight: generation.PreflightFunc(func() error { return nil })}
	out, err := orch.Run(context.Background(), Job(g), generation.Options{generation.OptNumItems: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"outputs/writing_styles_20250101120000.md",
		"outputs/writing_styles_20250101120000.json",
	}, out.Artifacts)
	assert.Equal(t, "Generated 1 items", out.Message)
}

func TestJob_ReportsGeneratorMessage(t *testing.T) {
	orch := &generation.Orchestrator{Preflight: generation.PreflightFunc(func() error { return nil })}

	fc := &fakeCompleter{text: "# A Title\n\nOne two three four."}
	deps := testDeps(fc)
	seedInputs(t, deps)
	article := NewArticle(deps)
	out, err := orch.Run(context.Background(), Job(article), generation.Options{
		generation.OptDemographic: "Train Nerd",
		generation.OptStyle:       "Minimalist Precision",
		generation.OptTopic:       "Timetables",
	})
	require.NoError(t, err)
	words, ok := out.Result.Field("actual_word_count")
	require.True(t, ok)
	assert.Equal(t, "Generated "+generation.Stringify(words)+" word article", out.Message)

	about := NewAbout(testDeps(&fakeCompleter{text: `{"about_page_text":"About us."}`}))
	out, err = orch.Run(context.Background(), Job(about), generation.Options{generation.OptTopic: "Rail"})
	require.NoError(t, err)
	assert.Equal(t, "Generated about page", out.Message)
}
