package generation

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns a snake_case field name into a heading label.
func Label(key string) string {
	// Casers are stateful; one per call keeps Label safe across handlers.
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// MarkdownWriter accumulates markdown and remembers the first write error,
// so formatters can emit line after line and check once at the end.
type MarkdownWriter struct {
	w   io.Writer
	err error
}

// NewMarkdownWriter wraps w.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{w: w}
}

// Err returns the first write error, if any.
func (m *MarkdownWriter) Err() error { return m.err }

func (m *MarkdownWriter) printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

// Heading writes "# text" at the given level followed by a blank line.
func (m *MarkdownWriter) Heading(level int, text string) {
	m.printf("%s %s\n\n", strings.Repeat("#", level), text)
}

// Line writes a paragraph line.
func (m *MarkdownWriter) Line(text string) {
	m.printf("%s\n", text)
}

// Blank writes an empty line.
func (m *MarkdownWriter) Blank() {
	m.printf("\n")
}

// Rule writes a horizontal separator.
func (m *MarkdownWriter) Rule() {
	m.printf("---\n\n")
}

// Field writes "**label:** value" when rec has a non-empty key.
func (m *MarkdownWriter) Field(rec *Record, key, label string) {
	v := StringField(rec, key, "")
	if v == "" {
		return
	}
	if label == "" {
		label = Label(key)
	}
	m.printf("**%s:** %s\n\n", label, v)
}

// Section writes a sub-heading plus the value of key, rendering lists as
// bullets. Nothing is written when the key is absent or empty.
func (m *MarkdownWriter) Section(rec *Record, key, title string, level int) {
	if rec == nil {
		return
	}
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return
	}
	if title == "" {
		title = Label(key)
	}

	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return
		}
		m.Heading(level, title)
		m.List(t)
	case *Record:
		if t.Len() == 0 {
			return
		}
		m.Heading(level, title)
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			m.printf("- **%s:** %s\n", Label(pair.Key), Stringify(pair.Value))
		}
		m.Blank()
	default:
		s := Stringify(t)
		if s == "" {
			return
		}
		m.Heading(level, title)
		m.printf("%s\n\n", s)
	}
}

// List writes each element as a "- item" bullet.
func (m *MarkdownWriter) List(items []any) {
	for _, item := range items {
		m.printf("- %s\n", Stringify(item))
	}
	m.Blank()
}

// Quote writes text as a blockquote, one "> " per line.
func (m *MarkdownWriter) Quote(text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		m.printf("> %s\n", line)
	}
	m.Blank()
}

// Header writes the standard document preamble shared by all generators.
func (m *MarkdownWriter) Header(title string, r *Result, countLabel string) {
	m.Heading(1, title)
	m.printf("Generated: %s\n", r.GeneratedAt)
	m.printf("Model: %s\n", r.ModelUsed)
	if countLabel != "" {
		m.printf("%s: %d\n", countLabel, r.Count())
	}
	m.Blank()
	m.Rule()
}

// AsRecord returns item as a *Record, or nil when it is some other value.
func AsRecord(item any) *Record {
	rec, _ := item.(*Record)
	return rec
}
