// ABOUTME: Rewrites a sibling dependency reference to a new version in place
// ABOUTME: Registry and directory refs get prefix+version; git refs keep their URL

package manifest

import (
	"strings"

	"github.com/mauromedda/pkgkit/internal/jsonfile"
	"github.com/mauromedda/pkgkit/internal/log"
	"github.com/mauromedda/pkgkit/internal/specifier"
)

// UpdateLocalDependency writes newVersion into the dependency map that holds
// resolved.Name: dependencies, then optionalDependencies, then
// devDependencies (created when missing or null). It reports whether the
// manifest changed; references it cannot rewrite, such as aliases, tarballs
// and remote URLs, are left alone, as is a devDependencies that is not an
// object.
func (p *Package) UpdateLocalDependency(resolved *specifier.Resolved, newVersion, savePrefix string) bool {
	if resolved == nil {
		return false
	}

	deps, ok := p.dependencyCollection(resolved.Name)
	if !ok {
		log.Warn("%s: devDependencies is not an object, not adding %s", p.Name(), resolved.Name)
		return false
	}

	var value string
	switch {
	case resolved.Registry || resolved.Type == specifier.TypeDirectory:
		value = savePrefix + newVersion
	case resolved.GitCommittish != "" && resolved.Hosted != nil:
		prefix := committishPrefix(resolved.GitCommittish)
		resolved.Hosted.Committish = prefix + newVersion
		value = resolved.Hosted.String()
	case resolved.GitRange != "" && resolved.Hosted != nil:
		resolved.Hosted.Committish = "semver:" + savePrefix + newVersion
		value = resolved.Hosted.String()
	default:
		log.Debug("%s: leaving %s reference %q as is", p.Name(), resolved.Type, resolved.RawSpec)
		return false
	}

	if deps == nil {
		deps = jsonfile.NewObject()
		p.doc.Set("devDependencies", deps)
	}
	deps.Set(resolved.Name, value)
	return true
}

// dependencyCollection picks the map to write name into; nil means a new
// devDependencies. It reports false when devDependencies is needed but holds
// something other than an object.
func (p *Package) dependencyCollection(name string) (*jsonfile.Object, bool) {
	for _, field := range []string{"dependencies", "optionalDependencies"} {
		if deps, ok := jsonfile.GetObject(p.doc, field); ok {
			if _, has := deps.Get(name); has {
				return deps, true
			}
		}
	}
	existing, _ := p.doc.Get("devDependencies")
	switch dev := existing.(type) {
	case *jsonfile.Object:
		if dev != nil {
			return dev, true
		}
	case nil:
	default:
		return nil, false
	}
	return nil, true
}

// committishPrefix returns the leading run of non-digits ("v" in "v1.2.3").
func committishPrefix(committish string) string {
	if i := strings.IndexAny(committish, "0123456789"); i >= 0 {
		return committish[:i]
	}
	return committish
}
