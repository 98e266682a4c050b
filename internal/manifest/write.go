// ABOUTME: WritePackage saves a manifest document with npm-style normalization
// ABOUTME: Dependency maps are key-sorted, empty ones dropped, indentation kept

package manifest

import (
	"os"
	"path/filepath"

	"github.com/mauromedda/pkgkit/internal/jsonfile"
)

var dependencyKeys = []string{
	"dependencies",
	"devDependencies",
	"optionalDependencies",
	"peerDependencies",
}

// WritePackageOptions configures WritePackage.
type WritePackageOptions struct {
	// Normalize sorts dependency maps and drops empty ones. nil means true.
	Normalize *bool
	// Indent for new files; existing files keep theirs.
	Indent   string
	SortKeys bool
	Mode     os.FileMode
}

func (o WritePackageOptions) normalize() bool {
	return o.Normalize == nil || *o.Normalize
}

// WritePackage writes doc to path, or to path/package.json when path does
// not already name a package.json.
func WritePackage(path string, doc *jsonfile.Object, opts WritePackageOptions) error {
	if filepath.Base(path) != FileName {
		path = filepath.Join(path, FileName)
	}
	if opts.normalize() {
		doc = normalizeDependencies(doc)
	}
	return jsonfile.Write(path, doc, jsonfile.WriteOptions{
		Indent:       opts.Indent,
		DetectIndent: true,
		SortKeys:     opts.SortKeys,
		Mode:         opts.Mode,
	})
}

func normalizeDependencies(doc *jsonfile.Object) *jsonfile.Object {
	out := jsonfile.CopyObject(doc)
	for _, key := range dependencyKeys {
		v, ok := out.Get(key)
		if !ok {
			continue
		}
		deps, isObject := v.(*jsonfile.Object)
		if !isObject {
			continue
		}
		if deps.Len() == 0 {
			out.Delete(key)
			continue
		}
		out.Set(key, jsonfile.SortObjectKeys(deps, nil))
	}
	return out
}
