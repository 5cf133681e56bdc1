package xcodeproj

import (
	"reflect"
	"slices"
)

// ProjectDiff compares the identifier-insensitive projections of two
// projects. It returns nil when they are structurally equal; otherwise a
// nested dictionary mirroring the tree down to each point of difference,
// where the two sides' values appear under labelA and labelB.
func ProjectDiff(a, b *Project, labelA, labelB string) any {
	return Diff(a.TreeHash(), b.TreeHash(), labelA, labelB)
}

// Diff compares two plain document values (dictionaries, arrays,
// scalars). Dictionaries are compared key by key, keeping only keys that
// differ. Arrays are compared as multisets: element order does not
// matter, and the diff lists the elements unique to each side. Anything
// else is compared by deep equality. A nil result means no difference.
func Diff(a, b any, labelA, labelB string) any {
	if am, ok := a.(map[string]any); ok {
		if bm, ok := b.(map[string]any); ok {
			return diffMaps(am, bm, labelA, labelB)
		}
	}
	if as, ok := a.([]any); ok {
		if bs, ok := b.([]any); ok {
			return diffArrays(as, bs, labelA, labelB)
		}
	}
	if reflect.DeepEqual(a, b) {
		return nil
	}
	return map[string]any{labelA: a, labelB: b}
}

func diffMaps(a, b map[string]any, labelA, labelB string) any {
	out := make(map[string]any)
	for k, av := range a {
		if d := Diff(av, b[k], labelA, labelB); d != nil {
			out[k] = d
		}
	}
	for k, bv := range b {
		if _, ok := a[k]; ok {
			continue
		}
		if d := Diff(nil, bv, labelA, labelB); d != nil {
			out[k] = d
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func diffArrays(a, b []any, labelA, labelB string) any {
	aOnly := multisetSubtract(a, b)
	bOnly := multisetSubtract(b, a)
	if len(aOnly) == 0 && len(bOnly) == 0 {
		return nil
	}
	return map[string]any{labelA: aOnly, labelB: bOnly}
}

// multisetSubtract returns the elements of a with no matching element in
// b, where each element of b cancels at most one element of a. Elements
// match when they have no recursive difference, so arrays nested inside
// an element still compare as multisets.
func multisetSubtract(a, b []any) []any {
	remaining := slices.Clone(b)
	var out []any
	for _, av := range a {
		i := slices.IndexFunc(remaining, func(bv any) bool {
			return Diff(av, bv, "", "") == nil
		})
		if i >= 0 {
			remaining = slices.Delete(remaining, i, i+1)
		} else {
			out = append(out, av)
		}
	}
	return out
}
