package generation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGenerationFailed marks a generate step that produced no result.
// Nothing is persisted when it is returned.
var ErrGenerationFailed = errors.New("generation failed")

// ErrNoPreflight is returned by an Orchestrator that has no credential check.
var ErrNoPreflight = errors.New("no credential check configured")

// EmptyPreview is the preview shown when the cleaned content is empty.
const EmptyPreview = "(empty)"

// PreviewLimit caps how much of a bad response is echoed back.
const PreviewLimit = 500

// MalformedJSONError reports content that is not a single valid JSON value.
type MalformedJSONError struct {
	Cause   error
	Preview string
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("JSON parse error: %v\nPreview: %s...", e.Cause, e.Preview)
}

func (e *MalformedJSONError) Unwrap() error { return e.Cause }

// UnexpectedShapeError reports valid JSON that is neither an array nor an object.
type UnexpectedShapeError struct {
	Type string
}

func (e *UnexpectedShapeError) Error() string {
	return "Unexpected response type: " + e.Type
}

// PersistenceError is returned when an artifact write fails after generation
// succeeded. Written lists the artifacts already on disk; they are left in place.
type PersistenceError struct {
	Format  Format
	Written []string
	Err     error
}

func (e *PersistenceError) Error() string {
	msg := fmt.Sprintf("save %s output: %v", e.Format, e.Err)
	if len(e.Written) > 0 {
		msg += " (already written: " + strings.Join(e.Written, ", ") + ")"
	}
	return msg
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func preview(cleaned string) string {
	if cleaned == "" {
		return EmptyPreview
	}
	runes := []rune(cleaned)
	if len(runes) > PreviewLimit {
		return string(runes[:PreviewLimit])
	}
	return cleaned
}
