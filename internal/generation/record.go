// Package generation holds the shared protocol every generator speaks:
// normalizing LLM output into items, the result model, artifact persistence,
// and the generate → persist → report lifecycle.
package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a schema-free JSON object that keeps the key order the model
// produced. Nested objects are Records too, arrays are []any, numbers are
// json.Number, so a decode/encode round trip does not reshuffle anything.
type Record = orderedmap.OrderedMap[string, any]

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return orderedmap.New[string, any]()
}

// Items is the normalized, ordered list a generator works with.
// Elements are usually *Record; other JSON values are kept as decoded.
type Items []any

// decodeJSON strictly parses data into Record/[]any/scalar values.
// Syntax errors carry the encoding/json diagnostic.
func decodeJSON(data []byte) (any, error) {
	// Validate with Unmarshal first: it rejects trailing garbage and yields
	// the standard diagnostics, which the token walk below does not.
	var probe json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		rec := NewRecord()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not string", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			rec.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return rec, nil

	case '[':
		list := make([]any, 0)
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	}

	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

// DecodeRecord parses a single JSON object, keeping key order.
func DecodeRecord(data []byte) (*Record, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	rec, ok := v.(*Record)
	if !ok {
		return nil, &UnexpectedShapeError{Type: jsonTypeName(v)}
	}
	return rec, nil
}

// StringField returns rec[key] rendered as text, or def when absent.
func StringField(rec *Record, key, def string) string {
	if rec == nil {
		return def
	}
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return def
	}
	return Stringify(v)
}

// Stringify renders a decoded JSON value for human-facing text.
// Lists are comma-joined; objects are compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		b, err := MarshalLiteral(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// MarshalLiteral encodes v like json.Marshal, keeping Record key order at
// every depth and writing &, < and > as is.
func MarshalLiteral(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeLiteral(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IndentLiteral is MarshalLiteral with two-space indentation.
func IndentLiteral(v any) ([]byte, error) {
	data, err := MarshalLiteral(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLiteral(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *Result:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		return writeLiteral(buf, t.Record())
	case *Record:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if pair != t.Oldest() {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, pair.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeLiteral(buf, pair.Value); err != nil {
				return fmt.Errorf("%s: %w", pair.Key, err)
			}
		}
		buf.WriteByte('}')
		return nil
	case Items:
		return writeLiteral(buf, []any(t))
	case []*Record:
		list := make([]any, len(t))
		for i, r := range t {
			list[i] = r
		}
		return writeLiteral(buf, list)
	case []any:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeLiteral(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeScalar(buf, v)
	}
}

// writeScalar covers everything that holds no Record.
func writeScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case *Record:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
