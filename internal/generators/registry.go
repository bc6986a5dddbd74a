package generators

import (
	"fmt"
	"sort"
)

// Registry is the fixed set of generators, keyed by id.
type Registry struct {
	byID  map[string]Generator
	order []string
}

// NewRegistry builds every generator against deps.
func NewRegistry(deps Deps) *Registry {
	r := &Registry{byID: make(map[string]Generator)}
	for _, spec := range []Spec{
		wizardSpec(),
		livedSpec(),
		softHardSpec(),
		aphorismsSpec(),
		readersSpec(),
		stylesSpec(),
	} {
		r.add(NewBase(spec, deps))
	}
	r.add(NewAbout(deps))
	r.add(NewArticle(deps))
	return r
}

func (r *Registry) add(g Generator) {
	if _, dup := r.byID[g.ID()]; dup {
		panic(fmt.Sprintf("generators: duplicate id %q", g.ID()))
	}
	r.byID[g.ID()] = g
	r.order = append(r.order, g.ID())
}

// Lookup returns the generator registered under id.
func (r *Registry) Lookup(id string) (Generator, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGenerator, id)
	}
	return g, nil
}

// List returns generator info in registration order.
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Info())
	}
	return out
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []string {
	ids := append([]string(nil), r.order...)
	sort.Strings(ids)
	return ids
}

// Len returns the number of generators.
func (r *Registry) Len() int { return len(r.order) }

// Entry is the id/name pair shown in grouped listings.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Grouped arranges generators as platform → category → entries.
func (r *Registry) Grouped() map[string]map[string][]Entry {
	out := make(map[string]map[string][]Entry)
	for _, info := range r.List() {
		byCategory, ok := out[info.Platform]
		if !ok {
			byCategory = make(map[string][]Entry)
			out[info.Platform] = byCategory
		}
		byCategory[info.Category] = append(byCategory[info.Category], Entry{ID: info.ID, Name: info.Name})
	}
	return out
}
