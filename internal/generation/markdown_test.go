package generation

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "Core Values", Label("core_values"))
	assert.Equal(t, "Age Range", Label("age_range"))
	assert.Equal(t, "Name", Label("name"))
}

func TestMarkdownWriter_SkipsMissingFields(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"name":"Ada","pain_points":["time","money"],"empty_list":[],"blank":"","traits":{"tone":"dry"}}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	md := NewMarkdownWriter(&buf)
	md.Field(rec, "name", "")
	md.Field(rec, "missing", "Missing")
	md.Field(rec, "blank", "")
	md.Section(rec, "pain_points", "", 3)
	md.Section(rec, "empty_list", "", 3)
	md.Section(rec, "absent", "Absent", 3)
	md.Section(rec, "traits", "", 3)
	require.NoError(t, md.Err())

	out := buf.String()
	assert.Contains(t, out, "**Name:** Ada")
	assert.Contains(t, out, "### Pain Points\n\n- time\n- money\n")
	assert.Contains(t, out, "### Traits\n\n- **Tone:** dry\n")
	assert.NotContains(t, out, "Missing")
	assert.NotContains(t, out, "Blank")
	assert.NotContains(t, out, "Empty List")
	assert.NotContains(t, out, "Absent")
}

func TestMarkdownWriter_HeaderAndQuote(t *testing.T) {
	r := &Result{GeneratedAt: "2025-01-01T00:00:00Z", ModelUsed: "gpt-4o", ItemsKey: "items", Items: Items{1, 2, 3}}

	var buf bytes.Buffer
	md := NewMarkdownWriter(&buf)
	md.Header("Aphorisms", r, "Total")
	md.Quote("line one\nline two")
	require.NoError(t, md.Err())

	assert.Equal(t, "# Aphorisms\n\n"+
		"Generated: 2025-01-01T00:00:00Z\n"+
		"Model: gpt-4o\n"+
		"Total: 3\n\n"+
		"---\n\n"+
		"> line one\n> line two\n\n", buf.String())
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestMarkdownWriter_StopsAfterFirstError(t *testing.T) {
	w := &failingWriter{}
	md := NewMarkdownWriter(w)
	md.Line("a")
	md.Line("b")
	md.Rule()

	assert.EqualError(t, md.Err(), "disk full")
	assert.Equal(t, 1, w.n)
}

func TestStringify(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"n":4.50,"b":false,"l":["a",1],"o":{"k":"v"},"z":null}`))
	require.NoError(t, err)

	assert.Equal(t, "4.50", StringField(rec, "n", ""))
	assert.Equal(t, "false", StringField(rec, "b", ""))
	assert.Equal(t, "a, 1", StringField(rec, "l", ""))
	assert.Equal(t, `{"k":"v"}`, StringField(rec, "o", ""))
	assert.Equal(t, "dflt", StringField(rec, "z", "dflt"))
	assert.Equal(t, "dflt", StringField(nil, "n", "dflt"))
}

func TestResult_RecordWithoutItemsKey(t *testing.T) {
	r := &Result{GeneratedAt: "t", ModelUsed: "m"}
	r.SetField("page_type", "about")
	r.SetField("headline", "Hello")

	assert.Equal(t, `{"generated_at":"t","model_used":"m","page_type":"about","headline":"Hello"}`, mustJSON(t, r))
	assert.Equal(t, 0, r.Count())

	v, ok := r.Field("headline")
	require.True(t, ok)
	assert.Equal(t, "Hello", v)
}

func TestResult_EmptyItemsSerializeAsArray(t *testing.T) {
	r := &Result{GeneratedAt: "t", ModelUsed: "m", CountKey: "n", ItemsKey: "items"}
	assert.Equal(t, `{"generated_at":"t","model_used":"m","n":0,"items":[]}`, mustJSON(t, r))
}

func TestOptions(t *testing.T) {
	opts := Options{
		OptNumItems: "12",
		OptModel:    "  ",
		OptTopic:    "remote work",
		"f":         float64(7),
	}

	assert.Equal(t, 12, opts.Int(OptNumItems, 15))
	assert.Equal(t, 7, opts.Int("f", 0))
	assert.Equal(t, 15, opts.Int("missing", 15))
	assert.Equal(t, "gpt-4o", opts.String(OptModel, "gpt-4o"))
	assert.Equal(t, "remote work", opts.String(OptTopic, ""))

	next := opts.With(OptModel, "o3-mini")
	assert.Equal(t, "o3-mini", next.String(OptModel, ""))
	assert.Equal(t, "  ", opts[OptModel], "With must not mutate the receiver")
}
