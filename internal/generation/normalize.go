package generation

import (
	"strings"
)

// DefaultItemKeys are tried when a caller does not name its own keys.
var DefaultItemKeys = []string{"items", "data", "results"}

const fence = "```"

// StripFences removes a surrounding markdown code fence, with or without a
// language tag. Unfenced content is only trimmed.
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, fence) {
		return content
	}

	lines := strings.Split(content, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == fence {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ParseItems turns raw completion text into the list of items it carries.
//
// Resolution order: a top-level array is returned as is; for an object the
// first of possibleKeys present wins, then the first array-valued field in
// document order, then the object itself as a single item. Scalars fail with
// *UnexpectedShapeError and invalid JSON with *MalformedJSONError.
func ParseItems(content string, possibleKeys ...string) (Items, error) {
	if len(possibleKeys) == 0 {
		possibleKeys = DefaultItemKeys
	}

	cleaned := StripFences(content)
	parsed, err := decodeJSON([]byte(cleaned))
	if err != nil {
		return nil, &MalformedJSONError{Cause: err, Preview: preview(cleaned)}
	}

	switch v := parsed.(type) {
	case []any:
		return Items(v), nil
	case *Record:
		return resolveRecord(v, possibleKeys), nil
	default:
		return nil, &UnexpectedShapeError{Type: jsonTypeName(parsed)}
	}
}

func resolveRecord(rec *Record, possibleKeys []string) Items {
	for _, key := range possibleKeys {
		if val, ok := rec.Get(key); ok {
			return asItems(val)
		}
	}

	for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
		if list, ok := pair.Value.([]any); ok {
			return Items(list)
		}
	}

	return Items{rec}
}

// asItems coerces a matched key's value into a list without dropping data.
func asItems(val any) Items {
	switch v := val.(type) {
	case []any:
		return Items(v)
	case nil:
		return Items{}
	default:
		return Items{v}
	}
}

// ParseObject parses raw completion text that must hold a single JSON object.
func ParseObject(content string) (*Record, error) {
	cleaned := StripFences(content)
	parsed, err := decodeJSON([]byte(cleaned))
	if err != nil {
		return nil, &MalformedJSONError{Cause: err, Preview: preview(cleaned)}
	}
	rec, ok := parsed.(*Record)
	if !ok {
		return nil, &UnexpectedShapeError{Type: jsonTypeName(parsed)}
	}
	return rec, nil
}
