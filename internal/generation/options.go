package generation

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Option keys forwarded from the CLI, HTTP and MCP front-ends to generators.
const (
	OptNumItems      = "num_items"
	OptModel         = "model"
	OptTopic         = "topic"
	OptStructureMode = "structure_mode"
	OptDemographic   = "demographic_label"
	OptStyle         = "style_name"
	OptWordCount     = "word_count"
	OptLength        = "length"
)

// Options is the keyword-argument bag a caller forwards to a generator.
type Options map[string]any

// String returns the option as text, or def when unset or blank.
func (o Options) String(key, def string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return def
	}
	s := strings.TrimSpace(Stringify(v))
	if s == "" {
		return def
	}
	return s
}

// Int returns the option as an int, or def when unset or not numeric.
func (o Options) Int(key string, def int) int {
	v, ok := o[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// With returns a copy of o with key set.
func (o Options) With(key string, value any) Options {
	out := make(Options, len(o)+1)
	for k, v := range o {
		out[k] = v
	}
	out[key] = value
	return out
}
