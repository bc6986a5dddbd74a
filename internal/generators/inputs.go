package generators

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/monadgen/internal/generation"
)

// ErrInputNotFound is returned when a named demographic or style is not in
// any stored artifact.
var ErrInputNotFound = errors.New("input not found")

// InputEntry is one demographic or style found in a stored artifact.
type InputEntry struct {
	Label      string             `json:"label,omitempty"`
	Name       string             `json:"name,omitempty"`
	SourceFile string             `json:"source_file"`
	Data       *generation.Record `json:"data"`
}

// Inputs is the catalogue composing generators draw from.
type Inputs struct {
	Demographics []InputEntry `json:"demographics"`
	Styles       []InputEntry `json:"styles"`
	CanGenerate  bool         `json:"can_generate"`
}

// LoadInputs scans the store for reader demographic and writing style
// artifacts. Unreadable files are skipped.
func LoadInputs(store *generation.Store) (*Inputs, error) {
	in := &Inputs{Demographics: []InputEntry{}, Styles: []InputEntry{}}

	demos, err := store.ReadRecords(ReaderDemographicsPrefix + "_*.json")
	if err != nil {
		return nil, fmt.Errorf("scan demographics: %w", err)
	}
	for _, stored := range demos {
		for _, rec := range records(stored.Record, "demographics") {
			in.Demographics = append(in.Demographics, InputEntry{
				Label:      generation.StringField(rec, "label", "Unknown"),
				SourceFile: stored.Name,
				Data:       rec,
			})
		}
	}

	styles, err := store.ReadRecords(WritingStylesPrefix + "_*.json")
	if err != nil {
		return nil, fmt.Errorf("scan styles: %w", err)
	}
	for _, stored := range styles {
		for _, rec := range records(stored.Record, "styles") {
			in.Styles = append(in.Styles, InputEntry{
				Name:       generation.StringField(rec, "name", "Unknown"),
				SourceFile: stored.Name,
				Data:       rec,
			})
		}
	}

	in.CanGenerate = len(in.Demographics) > 0 && len(in.Styles) > 0
	return in, nil
}

// Demographic returns the first demographic with the given label.
func (in *Inputs) Demographic(label string) (*generation.Record, error) {
	for _, e := range in.Demographics {
		if e.Label == label {
			return e.Data, nil
		}
	}
	return nil, fmt.Errorf("%w: demographic %q", ErrInputNotFound, label)
}

// Style returns the first style with the given name.
func (in *Inputs) Style(name string) (*generation.Record, error) {
	for _, e := range in.Styles {
		if e.Name == name {
			return e.Data, nil
		}
	}
	return nil, fmt.Errorf("%w: style %q", ErrInputNotFound, name)
}

// records returns the object elements of rec[key].
func records(rec *generation.Record, key string) []*generation.Record {
	v, ok := rec.Get(key)
	if !ok {
		return nil
	}
	list, _ := v.([]any)
	out := make([]*generation.Record, 0, len(list))
	for _, item := range list {
		if r := generation.AsRecord(item); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// indentJSON renders rec for inclusion in a prompt.
func indentJSON(rec *generation.Record) string {
	b, err := generation.IndentLiteral(rec)
	if err != nil {
		return generation.Stringify(rec)
	}
	return string(b)
}
