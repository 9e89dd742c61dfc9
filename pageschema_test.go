package sitepage_test

import (
	"testing"

	"github.com/xeipuuv/gojsonschema"

	sitepage "github.com/reoring/sitepage"
)

// compileComposite hands the built artifact to an independently instantiated
// evaluator, the way an editor-time diagnostics engine would consume it.
func compileComposite(t *testing.T, layout map[string]any, schemas map[string]any) *gojsonschema.Schema {
	t.Helper()
	composite, err := sitepage.BuildPageSchema(layout, schemas)
	if err != nil {
		t.Fatalf("build page schema: %v", err)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(composite))
	if err != nil {
		t.Fatalf("compile composite schema: %v", err)
	}
	return compiled
}

func evalComposite(t *testing.T, compiled *gojsonschema.Schema, page map[string]any) *gojsonschema.Result {
	t.Helper()
	res, err := compiled.Validate(gojsonschema.NewGoLoader(page))
	if err != nil {
		t.Fatalf("evaluate page: %v", err)
	}
	return res
}

func TestBuildPageSchema_AcceptsPageTheValidatorAccepts(t *testing.T) {
	compiled := compileComposite(t, basicLayout(), map[string]any{"Text@v1": textSchema()})

	page := pageWithHero(map[string]any{
		"type":  "Text@v1",
		"props": map[string]any{"text": "hi"},
	})
	if res := evalComposite(t, compiled, page); !res.Valid() {
		t.Fatalf("expected composite schema to accept the page, got: %v", res.Errors())
	}
}

func TestBuildPageSchema_AcceptsArraySlotAndMetaKey(t *testing.T) {
	compiled := compileComposite(t, basicLayout(), map[string]any{"Text@v1": textSchema()})

	page := map[string]any{
		"title": "home",
		"regions": map[string]any{
			"main": map[string]any{
				"_tw": map[string]any{"locked": true},
				"hero": []any{
					map[string]any{"type": "Text@v1", "props": map[string]any{"text": "a"}},
					map[string]any{"type": "Text@v1", "props": map[string]any{"text": "b"}},
				},
			},
		},
	}
	if res := evalComposite(t, compiled, page); !res.Valid() {
		t.Fatalf("expected array-valued slot and _tw to pass, got: %v", res.Errors())
	}
}

func TestBuildPageSchema_RejectsUndeclaredSlotKey(t *testing.T) {
	compiled := compileComposite(t, basicLayout(), map[string]any{"Text@v1": textSchema()})

	page := map[string]any{
		"regions": map[string]any{
			"main": map[string]any{
				"sidebar": map[string]any{"type": "Text@v1", "props": map[string]any{"text": "hi"}},
			},
		},
	}
	if res := evalComposite(t, compiled, page); res.Valid() {
		t.Fatalf("expected closed region shape to reject an undeclared slot key")
	}
}

// Unknown region keys at the top of regions stay permitted even though slot
// keys inside a declared region are closed. The runtime validator reports a
// different error for instances placed there; the divergence is deliberate.
func TestBuildPageSchema_PermitsUnknownRegionKeys(t *testing.T) {
	compiled := compileComposite(t, basicLayout(), map[string]any{"Text@v1": textSchema()})

	page := map[string]any{
		"regions": map[string]any{
			"main":       map[string]any{},
			"mysterious": map[string]any{"anything": "goes"},
		},
	}
	if res := evalComposite(t, compiled, page); !res.Valid() {
		t.Fatalf("expected unknown region keys to pass, got: %v", res.Errors())
	}
}

func TestBuildPageSchema_NarrowsPropsPerType(t *testing.T) {
	compiled := compileComposite(t, basicLayout(), map[string]any{"Text@v1": textSchema()})

	page := pageWithHero(map[string]any{
		"type":  "Text@v1",
		"props": map[string]any{"text": 123},
	})
	if res := evalComposite(t, compiled, page); res.Valid() {
		t.Fatalf("expected if/then branch to reject mistyped props")
	}
}

func TestBuildPageSchema_RejectsUnknownType(t *testing.T) {
	compiled := compileComposite(t, basicLayout(), map[string]any{"Text@v1": textSchema()})

	page := pageWithHero(map[string]any{
		"type":  "Image@v1",
		"props": map[string]any{},
	})
	if res := evalComposite(t, compiled, page); res.Valid() {
		t.Fatalf("expected the enumerated type set to reject an unknown type")
	}
}

func TestBuildPageSchema_SanitizesDefinitionNames(t *testing.T) {
	composite, err := sitepage.BuildPageSchema(basicLayout(), map[string]any{"Text@v1": textSchema()})
	if err != nil {
		t.Fatalf("build page schema: %v", err)
	}
	if composite.ID != sitepage.PageSchemaID {
		t.Fatalf("expected $id %s, got %s", sitepage.PageSchemaID, composite.ID)
	}
	def, ok := composite.Definitions["Text_v1"].(map[string]any)
	if !ok {
		t.Fatalf("expected sanitized definition Text_v1, got keys: %v", composite.Definitions)
	}
	if _, leaked := def["$id"]; leaked {
		t.Fatalf("embedded definition must not carry $id: %v", def)
	}
}

func TestBuildPageSchema_EmptyComponentSet(t *testing.T) {
	compiled := compileComposite(t, basicLayout(), map[string]any{})

	// Without any known types the instance contract still demands a non-empty
	// string type and an object props.
	good := pageWithHero(map[string]any{"type": "Anything", "props": map[string]any{}})
	if res := evalComposite(t, compiled, good); !res.Valid() {
		t.Fatalf("expected open type set to pass, got: %v", res.Errors())
	}
	bad := pageWithHero(map[string]any{"type": "", "props": map[string]any{}})
	if res := evalComposite(t, compiled, bad); res.Valid() {
		t.Fatalf("expected empty type to fail the minimum-length constraint")
	}
}

func TestBuildPageSchema_IsPure(t *testing.T) {
	schemas := map[string]any{"Text@v1": textSchema()}
	layout := basicLayout()
	a, err := sitepage.BuildPageSchema(layout, schemas)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := sitepage.BuildPageSchema(layout, schemas)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if len(a.Definitions) != len(b.Definitions) {
		t.Fatalf("expected identical builds, got %d vs %d definitions", len(a.Definitions), len(b.Definitions))
	}
	if _, mutated := schemas["Text@v1"].(map[string]any)["$id"]; mutated {
		t.Fatalf("caller component schema was mutated")
	}
}
