package sitepage

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/reoring/sitepage/internal/evaluator"
	"github.com/reoring/sitepage/render"
)

// DefaultLayoutSchemaID identifies the built-in layout schema.
const DefaultLayoutSchemaID = "SiteLayout@v1"

// defaultLayoutSchema requires at minimum a regions object whose entries
// declare a slots list. Additional properties are permitted at every level.
func defaultLayoutSchema() map[string]any {
	return map[string]any{
		"$id":      DefaultLayoutSchemaID,
		"type":     "object",
		"required": []any{"regions"},
		"properties": map[string]any{
			"regions": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":     "object",
					"required": []any{"slots"},
					"properties": map[string]any{
						"slots": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
}

// Options configures NewSiteValidator. Both fields are optional: a nil
// LayoutSchema falls back to the built-in default, and a nil ComponentSchemas
// yields a validator that rejects every component instance as unknown.
type Options struct {
	LayoutSchema     map[string]any
	ComponentSchemas map[string]any // Keyed by component-type name.
}

// Request is one end-to-end validation call.
type Request struct {
	Page      map[string]any
	Layout    map[string]any
	Renderers render.Registry
	// RenderSmoke invokes each instance's registered renderer with a minimal
	// rendering context so render-time failures surface during validation.
	RenderSmoke bool
}

// SiteValidator checks page documents end-to-end: layout shape, region/slot
// declaration, per-instance shape, renderer availability, and optionally a
// render smoke test. Build it once and reuse it across validation calls;
// the registries are immutable after construction, so concurrent Validate
// calls are safe.
type SiteValidator struct {
	eval           *evaluator.Registry
	layoutSchemaID string
	schemaIDs      map[string]string // Component-type name -> schema $id.
}

// NewSiteValidator registers the layout schema and every normalized component
// schema with a fresh structural evaluator. Registration is idempotent per
// identifier. A secondary mapping from component-type name to identifier is
// retained because evaluator lookup is by identifier while validation logic
// looks up by type name.
func NewSiteValidator(opts Options) (*SiteValidator, error) {
	eval := evaluator.New()

	layout := opts.LayoutSchema
	if layout == nil {
		layout = defaultLayoutSchema()
	}
	layoutID := DefaultLayoutSchemaID
	if raw, declared := layout["$id"]; declared {
		s, ok := raw.(string)
		if !ok || s == "" {
			return nil, &Error{
				Kind:    KindInvalidSchemaID,
				Message: "layout schema declares a non-string or empty $id",
				Details: map[string]any{"id": raw},
			}
		}
		layoutID = s
	} else {
		cp := make(map[string]any, len(layout)+1)
		maps.Copy(cp, layout)
		cp["$id"] = layoutID
		layout = cp
	}
	if err := eval.Register(layoutID, layout); err != nil {
		return nil, fmt.Errorf("register layout schema: %w", err)
	}

	normalized, err := NormalizeComponentSchemas(opts.ComponentSchemas)
	if err != nil {
		return nil, err
	}
	schemaIDs := make(map[string]string, len(normalized))
	for name, schema := range normalized {
		id, _ := schema["$id"].(string) // Guaranteed by normalization.
		if err := eval.Register(id, schema); err != nil {
			return nil, fmt.Errorf("register component schema %q: %w", name, err)
		}
		schemaIDs[name] = id
	}

	return &SiteValidator{
		eval:           eval,
		layoutSchemaID: layoutID,
		schemaIDs:      schemaIDs,
	}, nil
}

// Validate checks the page document against the layout and component set.
// The layout is validated first; a broken layout aborts the call before any
// page content is inspected. Instances are then visited in traversal order
// and the call fails fast at the first violation. A nil return means every
// instance passed.
func (v *SiteValidator) Validate(ctx context.Context, req Request) error {
	if err := v.checkLayout(req.Layout); err != nil {
		return err
	}
	for ref := range Instances(req.Page) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.checkInstance(req, ref); err != nil {
			return err
		}
	}
	return nil
}

func (v *SiteValidator) checkLayout(layout map[string]any) error {
	violations, err := v.eval.Validate(v.layoutSchemaID, layout)
	if err != nil {
		if errors.Is(err, evaluator.ErrUnknownSchema) {
			return &Error{
				Kind:    KindUnknownSchema,
				Message: fmt.Sprintf("layout schema %q was never registered", v.layoutSchemaID),
				Cause:   err,
			}
		}
		return err
	}
	if len(violations) > 0 {
		return &Error{
			Kind:    KindSchemaViolation,
			Message: "layout document failed structural validation",
			Where:   "layout",
			Issues:  toIssues(violations),
		}
	}
	return nil
}

func (v *SiteValidator) checkInstance(req Request, ref InstanceRef) error {
	where := ref.Where()

	layoutRegions, _ := req.Layout["regions"].(map[string]any)
	regionDecl, ok := layoutRegions[ref.Region].(map[string]any)
	if !ok {
		return &Error{
			Kind:    KindUndeclaredRegion,
			Message: fmt.Sprintf("region %q is not declared in the layout", ref.Region),
			Where:   where,
		}
	}

	declared := slotNames(regionDecl)
	if !slices.Contains(declared, ref.Slot) {
		return &Error{
			Kind:    KindUndeclaredSlot,
			Message: fmt.Sprintf("slot %q is not declared in region %q", ref.Slot, ref.Region),
			Where:   where,
			Details: map[string]any{"declaredSlots": declared},
		}
	}

	inst, ok := ref.Value.(map[string]any)
	if !ok || inst == nil {
		return &Error{
			Kind:    KindMalformedInstance,
			Message: "component instance must be a non-null object",
			Where:   where,
		}
	}

	typeName, _ := inst["type"].(string)
	if typeName == "" {
		return &Error{
			Kind:    KindMissingType,
			Message: "component instance must carry a non-empty string type",
			Where:   where,
		}
	}

	props, ok := inst["props"].(map[string]any)
	if !ok {
		return &Error{
			Kind:    KindMissingProps,
			Message: fmt.Sprintf("component %q must carry an object props", typeName),
			Where:   where,
		}
	}

	renderer, ok := req.Renderers[typeName]
	if !ok || renderer == nil {
		return &Error{
			Kind:    KindNoRenderer,
			Message: fmt.Sprintf("no renderer registered for component type %q", typeName),
			Where:   where,
		}
	}

	schemaID, ok := v.schemaIDs[typeName]
	if !ok {
		return &Error{
			Kind:    KindUnknownComponentType,
			Message: fmt.Sprintf("no schema registered for component type %q", typeName),
			Where:   where,
		}
	}
	violations, err := v.eval.Validate(schemaID, props)
	if err != nil {
		if errors.Is(err, evaluator.ErrUnknownSchema) {
			return &Error{
				Kind:    KindUnknownSchema,
				Message: fmt.Sprintf("schema %q for component type %q was never registered", schemaID, typeName),
				Where:   where,
				Cause:   err,
			}
		}
		return err
	}
	if len(violations) > 0 {
		return &Error{
			Kind:    KindSchemaViolation,
			Message: fmt.Sprintf("props for component %q failed schema %q", typeName, schemaID),
			Where:   where,
			Issues:  toIssues(violations),
		}
	}

	if req.RenderSmoke {
		if err := smokeTest(renderer, inst); err != nil {
			return &Error{
				Kind:    KindRendererFailure,
				Message: fmt.Sprintf("renderer for component %q failed during smoke test", typeName),
				Where:   where,
				Cause:   err,
			}
		}
	}
	return nil
}

// smokeTest invokes the renderer with a minimal rendering context. Panics are
// recovered and returned as errors so a misbehaving renderer cannot take down
// the validation call.
func smokeTest(r render.Renderer, inst map[string]any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("renderer panic: %v", rec)
		}
	}()
	_, err = r(inst, render.NewContext())
	return err
}

func toIssues(violations []evaluator.Violation) Issues {
	iss := make(Issues, 0, len(violations))
	for _, v := range violations {
		iss = append(iss, Issue{Path: v.Path, Message: v.Message, Keyword: v.Keyword})
	}
	return iss
}
