// ABOUTME: Helpers mirroring npm's view of manifest values
// ABOUTME: Scope-free bin names, one-level copies and JavaScript truthiness

package manifest

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/mauromedda/pkgkit/internal/jsonfile"
	"github.com/mauromedda/pkgkit/internal/specifier"
)

// binSafeName strips the scope from a package name.
func binSafeName(r *specifier.Resolved) string {
	if r.Scope != "" {
		return r.Name[len(r.Scope)+1:]
	}
	return r.Name
}

func shallowCopy(doc *jsonfile.Object) *jsonfile.Object {
	out := jsonfile.NewObject()
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		switch v := pair.Value.(type) {
		case []any:
			out.Set(pair.Key, append([]any(nil), v...))
		case *jsonfile.Object:
			out.Set(pair.Key, jsonfile.CopyObject(v))
		default:
			out.Set(pair.Key, v)
		}
	}
	return out
}

// truthy follows JavaScript's Boolean() coercion for JSON values.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return strings.Trim(val.String(), "0.-+eE") != ""
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return val != 0 && !math.IsNaN(val)
	case int:
		return val != 0
	default:
		return true
	}
}
