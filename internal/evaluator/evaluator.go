// Package evaluator wraps the external structural-schema evaluator behind a
// compile-once registry keyed by schema identifier. Validation collects every
// violation, not just the first.
package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrUnknownSchema reports a Validate call against an identifier that was
// never registered.
var ErrUnknownSchema = errors.New("evaluator: unknown schema identifier")

// Violation is one structural violation in evaluator terms. The root package
// converts these into its public Issue type.
type Violation struct {
	Path    string // JSON Pointer.
	Message string
	Keyword string
}

// Registry compiles structural schemas once and evaluates documents against
// them by identifier. It is immutable after construction-time registration,
// so concurrent Validate calls are safe.
type Registry struct {
	compiled map[string]*gojsonschema.Schema
}

func New() *Registry {
	return &Registry{compiled: make(map[string]*gojsonschema.Schema)}
}

// Has reports whether id is already registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.compiled[id]
	return ok
}

// Register compiles schema under id. Registering an identifier twice is a
// no-op, which keeps re-entrant construction safe.
func (r *Registry) Register(id string, schema map[string]any) error {
	if id == "" {
		return fmt.Errorf("evaluator: empty schema identifier")
	}
	if _, ok := r.compiled[id]; ok {
		return nil
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return fmt.Errorf("evaluator: compile schema %q: %w", id, err)
	}
	r.compiled[id] = compiled
	return nil
}

// Validate evaluates doc against the schema registered under id and returns
// the full violation list. A nil, empty result means the document conforms.
func (r *Registry) Validate(id string, doc any) ([]Violation, error) {
	compiled, ok := r.compiled[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, id)
	}
	result, err := compiled.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("evaluator: evaluate against %q: %w", id, err)
	}
	if result.Valid() {
		return nil, nil
	}
	errsFound := result.Errors()
	out := make([]Violation, 0, len(errsFound))
	for _, re := range errsFound {
		out = append(out, Violation{
			Path:    pointer(re.Field()),
			Message: re.Description(),
			Keyword: re.Type(),
		})
	}
	return out, nil
}

// pointer renders the evaluator's dotted field paths as JSON Pointers.
func pointer(field string) string {
	if field == "" || field == "(root)" {
		return "/"
	}
	return "/" + strings.ReplaceAll(field, ".", "/")
}
