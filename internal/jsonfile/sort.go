// ABOUTME: Deep key sorting for ordered JSON documents
// ABOUTME: Returns a sorted copy; arrays are walked so nested objects sort too

package jsonfile

import (
	"slices"
	"strings"
)

// SortKeys returns a copy of v with the keys of every object sorted by
// compare (byte order when nil).
func SortKeys(v any, compare func(a, b string) int) any {
	if compare == nil {
		compare = strings.Compare
	}
	return sortKeys(v, compare, true)
}

// SortObjectKeys sorts only the top level of o.
func SortObjectKeys(o *Object, compare func(a, b string) int) *Object {
	if compare == nil {
		compare = strings.Compare
	}
	return sortKeys(o, compare, false).(*Object)
}

func sortKeys(v any, compare func(a, b string) int, deep bool) any {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			return val
		}
		keys := Keys(val)
		slices.SortFunc(keys, compare)
		out := NewObject()
		for _, k := range keys {
			child, _ := val.Get(k)
			if deep {
				child = sortKeys(child, compare, deep)
			}
			out.Set(k, child)
		}
		return out
	case []any:
		if !deep {
			return val
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = sortKeys(item, compare, deep)
		}
		return out
	default:
		return v
	}
}
