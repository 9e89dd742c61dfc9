package sitepage

import (
	"fmt"
	"regexp"

	"github.com/reoring/sitepage/jsonschema"
)

// PageSchemaID identifies the composite page schema artifact.
const PageSchemaID = "SitePage@v1"

const (
	defComponentInstance = "componentInstance"
	defSlotValue         = "slotValue"
)

var defNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// BuildPageSchema derives a single self-contained composite schema describing
// a valid page document for the given layout and component set. The result is
// a pure value: no closures, no evaluator state, serializable, and suitable
// for registration with an independently instantiated diagnostics engine.
//
// The component contract is a type-tagged union built from if/then clauses
// rather than a plain oneOf, so violations stay attributable to the branch
// selected by the instance's type. Each declared region is a closed shape:
// exactly its declared slots plus the reserved metadata key are permitted.
// Unknown region keys at the top of "regions" remain permitted; the runtime
// validator and this artifact intentionally diverge there.
func BuildPageSchema(layout map[string]any, componentSchemas map[string]any) (*jsonschema.Schema, error) {
	normalized, err := NormalizeComponentSchemas(componentSchemas)
	if err != nil {
		return nil, err
	}

	types := sortedKeys(normalized)
	defs := make(map[string]any, len(types)+2)
	defNames := make(map[string]string, len(types))
	for _, name := range types {
		defNames[name] = embedDefinition(defs, normalized[name])
	}

	instance := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"type", "props"},
		Properties: map[string]*jsonschema.Schema{
			"type":  {Type: "string"},
			"props": {Type: "object"},
		},
	}
	if len(types) > 0 {
		enum := make([]any, 0, len(types))
		for _, t := range types {
			enum = append(enum, t)
		}
		instance.Properties["type"].Enum = enum
		for _, t := range types {
			instance.AllOf = append(instance.AllOf, &jsonschema.Schema{
				If: &jsonschema.Schema{
					Properties: map[string]*jsonschema.Schema{
						"type": {Const: t},
					},
					Required: []string{"type"},
				},
				Then: &jsonschema.Schema{
					Properties: map[string]*jsonschema.Schema{
						"props": {Ref: "#/definitions/" + defNames[t]},
					},
				},
			})
		}
	} else {
		minLen := 1
		instance.Properties["type"].MinLength = &minLen
	}
	defs[defComponentInstance] = instance
	defs[defSlotValue] = &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Ref: "#/definitions/" + defComponentInstance},
			{Type: "array", Items: &jsonschema.Schema{Ref: "#/definitions/" + defComponentInstance}},
		},
	}

	regionProps := map[string]*jsonschema.Schema{}
	layoutRegions, _ := layout["regions"].(map[string]any)
	for _, regionName := range sortedKeys(layoutRegions) {
		decl, _ := layoutRegions[regionName].(map[string]any)
		props := map[string]*jsonschema.Schema{
			ReservedRegionMetaKey: {},
		}
		for _, slot := range slotNames(decl) {
			props[slot] = &jsonschema.Schema{Ref: "#/definitions/" + defSlotValue}
		}
		regionProps[regionName] = &jsonschema.Schema{
			Type:                 "object",
			Properties:           props,
			AdditionalProperties: false,
		}
	}

	return &jsonschema.Schema{
		SchemaURI: "http://json-schema.org/draft-07/schema#",
		ID:        PageSchemaID,
		Type:      "object",
		Required:  []string{"regions"},
		Properties: map[string]*jsonschema.Schema{
			"title": {Type: "string"},
			"regions": {
				Type:       "object",
				Properties: regionProps,
			},
		},
		Definitions: defs,
	}, nil
}

// embedDefinition stores a copy of the component schema in the definitions
// table under a sanitized name and returns that name. The embedded copy drops
// "$id" so "#/definitions/..." references resolve against the composite
// document instead of a nested base URI. Sanitized names that collide get a
// numeric suffix.
func embedDefinition(defs map[string]any, schema map[string]any) string {
	id, _ := schema["$id"].(string)
	name := defNameSanitizer.ReplaceAllString(id, "_")
	if name == "" {
		name = "component"
	}
	base := name
	for n := 2; ; n++ {
		if _, taken := defs[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}

	embedded := make(map[string]any, len(schema))
	for k, v := range schema {
		if k == "$id" {
			continue
		}
		embedded[k] = v
	}
	defs[name] = embedded
	return name
}
