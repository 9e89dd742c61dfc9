package sitepage

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds (exported consts so callers can branch on Kind without string
// matching at call sites).
const (
	KindInvalidSchemaID      = "invalid_schema_id"
	KindUnknownSchema        = "unknown_schema"
	KindSchemaViolation      = "schema_violation"
	KindUndeclaredRegion     = "undeclared_region"
	KindUndeclaredSlot       = "undeclared_slot"
	KindMalformedInstance    = "malformed_instance"
	KindMissingType          = "missing_type"
	KindMissingProps         = "missing_props"
	KindNoRenderer           = "no_renderer"
	KindUnknownComponentType = "unknown_component_type"
	KindRendererFailure      = "renderer_failure"
)

// Issue is a single structural violation reported by the evaluator.
type Issue struct {
	Path    string // JSON Pointer (for example: /text).
	Message string
	Keyword string // Schema keyword that failed (type, required, ...).
}

// Issues is a collection of structural violations that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Message, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Error is the single failure value used throughout the engine. Kind
// identifies the contract violation, Where tags the logical location inside
// the page document (for example "main.hero[2]"), Issues carries the full
// structural sub-error list when the evaluator produced one, and Cause wraps
// an underlying failure such as a renderer error.
type Error struct {
	Kind    string
	Message string
	Where   string
	Details map[string]any
	Issues  Issues
	Cause   error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Kind)
	if e.Where != "" {
		fmt.Fprintf(b, " at %s", e.Where)
	}
	if e.Message != "" {
		fmt.Fprintf(b, ": %s", e.Message)
	}
	if len(e.Issues) > 0 {
		fmt.Fprintf(b, " (%s)", e.Issues.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// AsError extracts an *Error from an error chain using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
