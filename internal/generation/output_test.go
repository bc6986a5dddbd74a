package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(now time.Time) *Store {
	return &Store{
		Fs:  afero.NewMemMapFs(),
		Dir: "outputs",
		Now: func() time.Time { return now },
	}
}

func bulletFormatter(r *Result, w io.Writer) error {
	md := NewMarkdownWriter(w)
	md.Header("Test", r, "Count")
	for i, item := range r.Items {
		md.Heading(2, fmt.Sprintf("%d. %s", i+1, StringField(AsRecord(item), "title", "Untitled")))
	}
	return md.Err()
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat(" JSON "))
	assert.Equal(t, FormatMarkdown, ParseFormat("markdown"))
	assert.Equal(t, FormatMarkdown, ParseFormat(""))
	assert.Equal(t, FormatMarkdown, ParseFormat("pdf"))
	assert.Equal(t, "md", FormatMarkdown.Ext())
	assert.Equal(t, "json", FormatJSON.Ext())
}

func TestSafeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Remote Founders", 30, "remote_founders"},
		{"The Skeptical Engineer / Ops", 30, "the_skeptical_engineer__ops"},
		{"../../etc/passwd", 30, "etcpasswd"},
		{"A very long demographic label that keeps going", 30, "a_very_long_demographic_label_"},
		{"Café Owners", 0, "café_owners"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeIdentifier(tt.in, tt.max), tt.in)
	}
}

func TestStore_Filename(t *testing.T) {
	s := newMemStore(time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC))

	assert.Equal(t, "x_aphorisms_20250309140507.md", s.Filename("x_aphorisms", FormatMarkdown))
	assert.Equal(t, "x_aphorisms_20250309140507.json", s.Filename("x_aphorisms", FormatJSON))
}

func TestStore_SaveJSON(t *testing.T) {
	s := newMemStore(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	items, err := ParseItems(`[{"title":"Café culture","note":"naïve ✓"}]`)
	require.NoError(t, err)

	r := &Result{GeneratedAt: "2025-01-02T03:04:00Z", ModelUsed: "m", CountKey: "num_items", ItemsKey: "items", Items: items}
	r.SetField("theme", "coffee")

	path, err := s.Save(r, "drinks", bulletFormatter, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "outputs/drinks_20250102030405.json", path)

	data, err := afero.ReadFile(s.Fs, path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Café culture", "non-ASCII must be written literally")
	assert.Contains(t, text, "naïve ✓")
	assert.True(t, strings.HasPrefix(text, "{\n  \"generated_at\""), "two-space indentation")

	// The JSON is the Result unchanged, fields in order.
	order := []string{`"generated_at"`, `"model_used"`, `"theme"`, `"num_items"`, `"items"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		require.Greater(t, idx, last, key)
		last = idx
	}

	back, err := DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "1", StringField(back, "num_items", ""))
}

func TestStore_SaveJSON_HTMLCharactersLiteral(t *testing.T) {
	s := newMemStore(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	items, err := ParseItems(`[{"title":"Q&A <b> 'quotes'","tags":["R&D",{"x":"a<b"}]}]`)
	require.NoError(t, err)
	r := &Result{GeneratedAt: "now", ModelUsed: "m", ItemsKey: "items", Items: items}
	r.SetField("topic", "Salt & Pepper")

	path, err := s.Save(r, "qa", bulletFormatter, FormatJSON)
	require.NoError(t, err)

	data, err := afero.ReadFile(s.Fs, path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `"title": "Q&A <b> 'quotes'"`)
	assert.Contains(t, text, `"R&D"`)
	assert.Contains(t, text, `"x": "a<b"`)
	assert.Contains(t, text, `"topic": "Salt & Pepper"`)
	assert.NotContains(t, text, `\u0026`)
	assert.NotContains(t, text, `\u003c`)
	assert.True(t, strings.HasSuffix(text, "}\n"))

	back, err := DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "Salt & Pepper", StringField(back, "topic", ""))
}

func TestMarshalLiteral(t *testing.T) {
	rec := NewRecord()
	rec.Set("z", "a&b")
	rec.Set("a", []any{json.Number("1"), nil, true})
	inner := NewRecord()
	inner.Set("k", "<v>")
	rec.Set("m", inner)

	data, err := MarshalLiteral(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"a&b","a":[1,null,true],"m":{"k":"<v>"}}`, string(data))

	r := &Result{GeneratedAt: "t", ModelUsed: "m"}
	data, err = json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"generated_at":"t","model_used":"m"}`, string(data))
}

func TestStore_SaveMarkdown(t *testing.T) {
	s := newMemStore(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	items, err := ParseItems(`[{"title":"One"},{"other":"no title"}]`)
	require.NoError(t, err)
	r := &Result{GeneratedAt: "now", ModelUsed: "m", ItemsKey: "items", Items: items}

	path, err := s.Save(r, "notes", bulletFormatter, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "outputs/notes_20250102030405.md", path)

	data, err := afero.ReadFile(s.Fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Test")
	assert.Contains(t, string(data), "Count: 2")
	assert.Contains(t, string(data), "## 1. One")
	assert.Contains(t, string(data), "## 2. Untitled")
}

func TestStore_SaveMarkdownFormatterError(t *testing.T) {
	s := newMemStore(time.Now())
	r := &Result{}
	boom := errors.New("boom")

	_, err := s.Save(r, "x", func(*Result, io.Writer) error { return boom }, FormatMarkdown)
	require.ErrorIs(t, err, boom)

	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list, "nothing is written when formatting fails")
}

func TestStore_SameSecondOverwrites(t *testing.T) {
	s := newMemStore(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	first := &Result{ModelUsed: "first"}
	second := &Result{ModelUsed: "second"}

	p1, err := s.Save(first, "dup", nil, FormatJSON)
	require.NoError(t, err)
	p2, err := s.Save(second, "dup", nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	data, err := afero.ReadFile(s.Fs, p2)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"second"`)
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := newMemStore(time.Now())
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	files := map[string]time.Time{
		"a_20250101000000.md":   base,
		"b_20250101000100.json": base.Add(time.Minute),
		"c_20250101000200.md":   base.Add(2 * time.Minute),
		"ignore.txt":            base.Add(3 * time.Minute),
	}
	for name, mod := range files {
		path := s.Dir + "/" + name
		require.NoError(t, afero.WriteFile(s.Fs, path, []byte("x"), 0o644))
		require.NoError(t, s.Fs.Chtimes(path, mod, mod))
	}

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c_20250101000200.md", list[0].Name)
	assert.Equal(t, "b_20250101000100.json", list[1].Name)
	assert.Equal(t, "json", list[1].Type)
	assert.Equal(t, "a_20250101000000.md", list[2].Name)
	assert.Equal(t, int64(1), list[2].Size)
}

func TestStore_ListMissingDir(t *testing.T) {
	s := newMemStore(time.Now())
	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_Open(t *testing.T) {
	s := newMemStore(time.Now())
	require.NoError(t, afero.WriteFile(s.Fs, "outputs/a.md", []byte("# hi"), 0o644))
	require.NoError(t, afero.WriteFile(s.Fs, "secret.txt", []byte("nope"), 0o644))

	data, err := s.Open("a.md")
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(data))

	_, err = s.Open("missing.md")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	for _, bad := range []string{"", "../secret.txt", "sub/a.md", ".hidden"} {
		_, err = s.Open(bad)
		assert.ErrorIs(t, err, ErrInvalidArtifact, bad)
	}
}

func TestStore_ReadRecords(t *testing.T) {
	s := newMemStore(time.Now())
	require.NoError(t, afero.WriteFile(s.Fs, "outputs/writing_styles_1.json", []byte(`{"styles":[{"name":"Terse"}]}`), 0o644))
	require.NoError(t, afero.WriteFile(s.Fs, "outputs/writing_styles_2.json", []byte(`not json`), 0o644))
	require.NoError(t, afero.WriteFile(s.Fs, "outputs/reader_demographics_1.json", []byte(`{}`), 0o644))

	recs, err := s.ReadRecords("writing_styles_*.json")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "writing_styles_1.json", recs[0].Name)

	styles, ok := recs[0].Record.Get("styles")
	require.True(t, ok)
	assert.Len(t, styles, 1)
}
