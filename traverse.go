package sitepage

import (
	"fmt"
	"iter"
	"slices"
)

// ReservedRegionMetaKey marks metadata inside a region object. It is not a
// slot and is skipped during traversal.
const ReservedRegionMetaKey = "_tw"

// InstanceRef locates one component instance within a page document.
type InstanceRef struct {
	Region string
	Slot   string
	Index  int // Element index for array-valued slots, -1 for a single instance.
	Value  any
}

// Where renders the logical location, for example "main.hero" or "main.hero[2]".
func (r InstanceRef) Where() string {
	if r.Index < 0 {
		return r.Region + "." + r.Slot
	}
	return fmt.Sprintf("%s.%s[%d]", r.Region, r.Slot, r.Index)
}

// Instances yields every component instance in the page exactly once, in
// deterministic order: regions by sorted key, slots by sorted key within each
// region, array elements by index. A slot bound to a single instance yields
// index -1. The sequence is finite and restartable; re-traversing the same
// document yields the same sequence. This order is the contract surface for
// error-location reporting.
func Instances(page map[string]any) iter.Seq[InstanceRef] {
	return func(yield func(InstanceRef) bool) {
		regions, _ := page["regions"].(map[string]any)
		for _, regionName := range sortedKeys(regions) {
			slots, _ := regions[regionName].(map[string]any)
			for _, slotName := range sortedKeys(slots) {
				if slotName == ReservedRegionMetaKey {
					continue
				}
				switch v := slots[slotName].(type) {
				case []any:
					for i, item := range v {
						if !yield(InstanceRef{Region: regionName, Slot: slotName, Index: i, Value: item}) {
							return
						}
					}
				default:
					if !yield(InstanceRef{Region: regionName, Slot: slotName, Index: -1, Value: v}) {
						return
					}
				}
			}
		}
	}
}

// sortedKeys yields map keys in deterministic sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// slotNames extracts the declared slot list from a region declaration. Both
// decoded documents ([]any) and in-process literals ([]string) are accepted.
func slotNames(regionDecl map[string]any) []string {
	switch v := regionDecl["slots"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if name, ok := s.(string); ok {
				out = append(out, name)
			}
		}
		return out
	}
	return nil
}
