// ABOUTME: Workspace discovers sibling packages under a root by glob patterns
// ABOUTME: Manifests load concurrently; lookups offer fuzzy name suggestions

package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/pkgkit/internal/jsonfile"
	"github.com/mauromedda/pkgkit/internal/log"
	"github.com/mauromedda/pkgkit/internal/manifest"
	"github.com/mauromedda/pkgkit/internal/pkgname"
)

const (
	loadConcurrency = 8
	maxSuggestions  = 3
)

var (
	// ErrPackageNotFound is returned by Get for names not in the workspace.
	ErrPackageNotFound = errors.New("package not found")
	// ErrDuplicatePackage is returned by Discover when two manifests share a name.
	ErrDuplicatePackage = errors.New("duplicate package name")
)

// DefaultPatterns are used when Discover gets no patterns.
var DefaultPatterns = []string{"packages/*"}

// dependencyFields are searched in rewrite precedence order.
var dependencyFields = []string{"dependencies", "optionalDependencies", "devDependencies"}

// Workspace is a set of packages sharing one root.
type Workspace struct {
	root     string
	parser   *pkgname.Parser
	packages []*manifest.Package
	byName   map[string]*manifest.Package
}

// Options configures DiscoverWith.
type Options struct {
	// Patterns are globs relative to the root; empty means DefaultPatterns.
	Patterns []string
	// Parser checks package names; nil means the strict default.
	Parser *pkgname.Parser
}

// Discover loads every package whose directory matches one of patterns
// (globs relative to root). Packages are sorted by name.
func Discover(ctx context.Context, root string, patterns []string) (*Workspace, error) {
	return DiscoverWith(ctx, root, Options{Patterns: patterns})
}

// DiscoverWith is Discover with a custom name parser.
func DiscoverWith(ctx context.Context, root string, opts Options) (*Workspace, error) {
	root, err := NormalizeRoot(root)
	if err != nil {
		return nil, err
	}
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	dirs, err := packageDirs(root, patterns)
	if err != nil {
		return nil, err
	}
	log.Debug("discovered %d package directories under %s", len(dirs), root)

	packages := make([]*manifest.Package, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pkg, err := manifest.LoadWithParser(opts.Parser, dir, root)
			if err != nil {
				return err
			}
			packages[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(packages, func(a, b *manifest.Package) int {
		return strings.Compare(a.Name(), b.Name())
	})

	byName := make(map[string]*manifest.Package, len(packages))
	for _, pkg := range packages {
		if prev, ok := byName[pkg.Name()]; ok {
			return nil, fmt.Errorf("%w %q: %s and %s", ErrDuplicatePackage, pkg.Name(), prev.Location(), pkg.Location())
		}
		byName[pkg.Name()] = pkg
	}

	return &Workspace{root: root, parser: opts.Parser, packages: packages, byName: byName}, nil
}

// packageDirs expands patterns into unique directories holding a package.json.
func packageDirs(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("bad package pattern %q: %w", pattern, err)
		}
		for _, dir := range matches {
			if seen[dir] {
				continue
			}
			info, err := os.Stat(filepath.Join(dir, manifest.FileName))
			if err != nil || info.IsDir() {
				continue
			}
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs, nil
}

// Root returns the normalized workspace root.
func (w *Workspace) Root() string { return w.root }

// Packages returns the packages sorted by name.
func (w *Workspace) Packages() []*manifest.Package { return w.packages }

// Get returns the package called name.
func (w *Workspace) Get(name string) (*manifest.Package, error) {
	if pkg, ok := w.byName[name]; ok {
		return pkg, nil
	}
	if suggestions := w.suggest(name); len(suggestions) > 0 {
		return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrPackageNotFound, name, strings.Join(suggestions, ", "))
	}
	return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
}

type packageNames []*manifest.Package

func (p packageNames) String(i int) string { return p[i].Name() }
func (p packageNames) Len() int            { return len(p) }

func (w *Workspace) suggest(name string) []string {
	matches := fuzzy.FindFrom(name, packageNames(w.packages))
	var out []string
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Dependents returns the packages that list name in their dependencies,
// optionalDependencies or devDependencies.
func (w *Workspace) Dependents(name string) []*manifest.Package {
	var out []*manifest.Package
	for _, pkg := range w.packages {
		if pkg.Name() == name {
			continue
		}
		if _, _, ok := dependencySpec(pkg, name); ok {
			out = append(out, pkg)
		}
	}
	return out
}

// dependencySpec finds the first dependency map of pkg that references name.
func dependencySpec(pkg *manifest.Package, name string) (field, spec string, ok bool) {
	for _, field := range dependencyFields {
		deps, _ := pkg.Get(field).(*jsonfile.Object)
		if deps == nil {
			continue
		}
		v, has := deps.Get(name)
		if !has {
			continue
		}
		s, isString := v.(string)
		return field, s, isString
	}
	return "", "", false
}
