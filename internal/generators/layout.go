package generators

import (
	"fmt"
	"io"

	"github.com/josephgoksu/monadgen/internal/generation"
)

// FieldKind selects how a field is rendered in markdown.
type FieldKind int

const (
	// Inline renders "**Label:** value"; lists are comma-joined.
	Inline FieldKind = iota
	// Bullets renders the label on its own line followed by "- item" bullets.
	Bullets
	// Quote renders the label followed by a blockquote.
	Quote
	// Callout renders the label as a sub-heading over a blockquote.
	Callout
	// Score renders "**Label:** value/10".
	Score
)

// Field is one item key and its display label.
type Field struct {
	Key   string
	Label string
	Kind  FieldKind
}

// Group is a run of fields under an optional sub-heading.
type Group struct {
	Heading string
	Fields  []Field
}

// Layout renders a list Result as markdown: the standard header, an
// optional preamble, then one numbered section per item.
type Layout struct {
	Title      string
	Preamble   []string
	CountLabel string

	// TitleKey names the item field appended to the section number.
	TitleKey     string
	TitleDefault string

	Groups []Group
}

// Render implements generation.MarkdownFormatter.
func (l *Layout) Render(r *generation.Result, w io.Writer) error {
	mw := generation.NewMarkdownWriter(w)
	mw.Header(l.Title, r, l.CountLabel)
	for _, line := range l.Preamble {
		mw.Line(line)
	}
	if len(l.Preamble) > 0 {
		mw.Blank()
		mw.Rule()
	}

	for i, item := range r.Items {
		rec := generation.AsRecord(item)
		title := fmt.Sprintf("%d.", i+1)
		if rec == nil {
			mw.Heading(2, title)
			mw.Line(generation.Stringify(item))
			mw.Blank()
			mw.Rule()
			continue
		}
		if l.TitleKey != "" {
			title += " " + generation.StringField(rec, l.TitleKey, l.TitleDefault)
		}
		mw.Heading(2, title)

		for _, g := range l.Groups {
			if g.Heading != "" {
				mw.Heading(3, g.Heading)
			}
			for _, f := range g.Fields {
				writeField(mw, rec, f)
			}
		}
		mw.Rule()
	}
	return mw.Err()
}

func writeField(mw *generation.MarkdownWriter, rec *generation.Record, f Field) {
	label := f.Label
	if label == "" {
		label = generation.Label(f.Key)
	}

	switch f.Kind {
	case Bullets:
		v, ok := rec.Get(f.Key)
		if !ok || v == nil {
			return
		}
		mw.Line("**" + label + ":**")
		if list, isList := v.([]any); isList {
			mw.List(list)
			return
		}
		mw.Line(generation.Stringify(v))
		mw.Blank()
	case Quote:
		text := generation.StringField(rec, f.Key, "")
		if text == "" {
			return
		}
		mw.Line("**" + label + ":**")
		mw.Quote(text)
	case Callout:
		text := generation.StringField(rec, f.Key, "")
		if text == "" {
			return
		}
		mw.Heading(3, label)
		mw.Quote(text)
	case Score:
		text := generation.StringField(rec, f.Key, "")
		if text == "" {
			return
		}
		mw.Line(fmt.Sprintf("**%s:** %s/10", label, text))
		mw.Blank()
	default:
		mw.Field(rec, f.Key, label)
	}
}
