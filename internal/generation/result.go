package generation

import (
	"time"
)

// Usage is the token accounting reported by the completion endpoint.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	Cost             float64
}

// TotalTokens returns prompt plus completion tokens.
func (u Usage) TotalTokens() int {
	return u.PromptTokens + u.CompletionTokens
}

// Result is one generation's output. It is built once by a generator and
// then handed unchanged to every persistence call.
type Result struct {
	GeneratedAt string
	ModelUsed   string

	// CountKey and ItemsKey name the generator-specific fields under which
	// len(Items) and Items are serialized. Results without ItemsKey carry
	// everything in Meta.
	CountKey string
	ItemsKey string
	Items    Items

	// Meta holds extra top-level fields in the order they were set.
	Meta *Record

	// Usage is reported to callers but never serialized.
	Usage Usage `json:"-"`
}

// NewResult stamps a result with the generation time and model.
func NewResult(model string, now time.Time) *Result {
	return &Result{
		GeneratedAt: now.Format(time.RFC3339),
		ModelUsed:   model,
		Meta:        NewRecord(),
	}
}

// Count returns the number of items.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// Field looks up a meta field.
func (r *Result) Field(key string) (any, bool) {
	if r == nil || r.Meta == nil {
		return nil, false
	}
	return r.Meta.Get(key)
}

// SetField adds or replaces a meta field.
func (r *Result) SetField(key string, value any) {
	if r.Meta == nil {
		r.Meta = NewRecord()
	}
	r.Meta.Set(key, value)
}

// Record flattens the result into the ordered document that gets persisted.
func (r *Result) Record() *Record {
	rec := NewRecord()
	rec.Set("generated_at", r.GeneratedAt)
	rec.Set("model_used", r.ModelUsed)
	if r.Meta != nil {
		for pair := r.Meta.Oldest(); pair != nil; pair = pair.Next() {
			rec.Set(pair.Key, pair.Value)
		}
	}
	if r.ItemsKey != "" {
		if r.CountKey != "" {
			rec.Set(r.CountKey, len(r.Items))
		}
		items := r.Items
		if items == nil {
			items = Items{}
		}
		rec.Set(r.ItemsKey, []any(items))
	}
	return rec
}

func (r *Result) MarshalJSON() ([]byte, error) {
	return MarshalLiteral(r.Record())
}
