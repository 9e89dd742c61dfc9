package sitepage

import (
	"fmt"
	"maps"
)

// NormalizeComponentSchemas turns a heterogeneous collection of component
// schema definitions into a canonical mapping from component-type name to a
// schema object guaranteed to carry a non-empty string "$id".
//
// Entries whose value is not an object are silently skipped so decorative or
// malformed registry entries do not fail the whole batch. When a schema lacks
// "$id" the returned mapping holds a shallow copy with the registry key
// assigned as identifier; the caller's schema object is never mutated, and
// callers must not assume referential identity is preserved.
func NormalizeComponentSchemas(in map[string]any) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(in))
	for key, raw := range in {
		obj, ok := raw.(map[string]any)
		if !ok || obj == nil {
			continue
		}
		id, err := resolveSchemaID(key, obj)
		if err != nil {
			return nil, err
		}
		if _, declared := obj["$id"]; !declared {
			cp := make(map[string]any, len(obj)+1)
			maps.Copy(cp, obj)
			cp["$id"] = id
			obj = cp
		}
		out[key] = obj
	}
	return out, nil
}

// resolveSchemaID returns the schema's self-declared "$id" when present, else
// the registry key. A resolved identifier that is not a non-empty string is a
// contract violation.
func resolveSchemaID(key string, schema map[string]any) (string, error) {
	id := key
	if raw, declared := schema["$id"]; declared {
		s, ok := raw.(string)
		if !ok || s == "" {
			return "", &Error{
				Kind:    KindInvalidSchemaID,
				Message: fmt.Sprintf("component schema %q declares a non-string or empty $id", key),
				Details: map[string]any{"key": key, "id": raw},
			}
		}
		id = s
	}
	if id == "" {
		return "", &Error{
			Kind:    KindInvalidSchemaID,
			Message: "component schema resolves to an empty identifier",
			Details: map[string]any{"key": key},
		}
	}
	return id, nil
}
