// ABOUTME: Package wraps one package.json document with location-aware accessors
// ABOUTME: The document is owned by the Package and replaced wholesale on Refresh

package manifest

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mauromedda/pkgkit/internal/jsonfile"
	"github.com/mauromedda/pkgkit/internal/pkgname"
	"github.com/mauromedda/pkgkit/internal/specifier"
)

// FileName is the only file a Package reads or writes.
const FileName = "package.json"

// Package is an in-memory handle over a package manifest.
type Package struct {
	doc      *jsonfile.Object
	location string
	rootPath string
	resolved *specifier.Resolved
	scripts  *jsonfile.Object
	contents string
}

// New wraps doc for the package in location (an absolute directory). An
// empty rootPath means location. The document must carry a valid name.
func New(doc *jsonfile.Object, location, rootPath string) (*Package, error) {
	return NewWithParser(nil, doc, location, rootPath)
}

// NewWithParser is New with the name checked by parser; nil means the
// strict default.
func NewWithParser(parser *pkgname.Parser, doc *jsonfile.Object, location, rootPath string) (*Package, error) {
	if doc == nil {
		doc = jsonfile.NewObject()
	}
	if rootPath == "" {
		rootPath = location
	}

	var name *string
	if s, ok := jsonfile.GetString(doc, "name"); ok {
		name = &s
	}
	if name == nil {
		return nil, &pkgname.ValidationError{Msg: pkgname.TryParseRef(nil).Error}
	}

	rel, err := filepath.Rel(rootPath, location)
	if err != nil {
		return nil, fmt.Errorf("locating %s under %s: %w", location, rootPath, err)
	}
	resolved, err := specifier.ResolveWith(parser, *name, "file:"+filepath.ToSlash(rel), rootPath)
	if err != nil {
		return nil, err
	}

	scripts := jsonfile.NewObject()
	if s, ok := jsonfile.GetObject(doc, "scripts"); ok {
		scripts = jsonfile.CopyObject(s)
	}

	return &Package{
		doc:      doc,
		location: location,
		rootPath: rootPath,
		resolved: resolved,
		scripts:  scripts,
	}, nil
}

// Load reads <dir>/package.json.
func Load(dir, rootPath string) (*Package, error) {
	return LoadWithParser(nil, dir, rootPath)
}

// LoadWithParser is Load with the name checked by parser.
func LoadWithParser(parser *pkgname.Parser, dir, rootPath string) (*Package, error) {
	doc, err := jsonfile.LoadObject(filepath.Join(dir, FileName), jsonfile.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	pkg, err := NewWithParser(parser, doc, dir, rootPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, FileName), err)
	}
	return pkg, nil
}

// Refresh re-reads the manifest from disk and swaps the whole document.
// Location, root, resolved specifier and scripts snapshot are kept.
func (p *Package) Refresh() error {
	doc, err := jsonfile.LoadObject(p.ManifestLocation(), jsonfile.LoadOptions{})
	if err != nil {
		return fmt.Errorf("refreshing manifest: %w", err)
	}
	if _, ok := jsonfile.GetString(doc, "name"); !ok {
		return errors.New("refreshing manifest: " + pkgname.TryParseRef(nil).Error)
	}
	p.doc = doc
	return nil
}

// Save writes the manifest to ManifestLocation.
func (p *Package) Save(opts WritePackageOptions) error {
	return WritePackage(p.ManifestLocation(), p.ToJSON(), opts)
}

// Name returns the package name.
func (p *Package) Name() string {
	name, _ := jsonfile.GetString(p.doc, "name")
	return name
}

func (p *Package) Location() string { return p.location }

func (p *Package) RootPath() string { return p.rootPath }

// Resolved returns how the workspace root refers to this package.
func (p *Package) Resolved() *specifier.Resolved { return p.resolved }

// Scripts returns the scripts snapshot taken at construction. Changes to it
// do not reach the document.
func (p *Package) Scripts() *jsonfile.Object { return p.scripts }

// Private reports whether the "private" field is truthy.
func (p *Package) Private() bool {
	v, _ := p.doc.Get("private")
	return truthy(v)
}

// Version returns the "version" field.
func (p *Package) Version() string {
	v, _ := jsonfile.GetString(p.doc, "version")
	return v
}

// SetVersion sets the "version" field.
func (p *Package) SetVersion(version string) {
	p.doc.Set("version", version)
}

// Bin returns the executables map. A string "bin" is keyed by the package
// name without its scope.
func (p *Package) Bin() *jsonfile.Object {
	v, _ := p.doc.Get("bin")
	switch bin := v.(type) {
	case string:
		return jsonfile.ObjectOf(binSafeName(p.resolved), bin)
	case *jsonfile.Object:
		return jsonfile.CopyObject(bin)
	default:
		return jsonfile.NewObject()
	}
}

func (p *Package) BinLocation() string {
	return filepath.Join(p.location, "node_modules", ".bin")
}

func (p *Package) ManifestLocation() string {
	return filepath.Join(p.location, FileName)
}

func (p *Package) NodeModulesLocation() string {
	return filepath.Join(p.location, "node_modules")
}

// Contents returns the directory that gets published: an explicit override,
// then publishConfig.directory, then the package root.
func (p *Package) Contents() string {
	if p.contents != "" {
		return p.contents
	}
	if pc, ok := jsonfile.GetObject(p.doc, "publishConfig"); ok {
		if dir, ok := jsonfile.GetString(pc, "directory"); ok && dir != "" {
			return filepath.Join(p.location, dir)
		}
	}
	return p.location
}

// SetContents overrides Contents with a sub-directory of the package.
func (p *Package) SetContents(subDirectory string) {
	p.contents = filepath.Join(p.location, subDirectory)
}

func (p *Package) Dependencies() *jsonfile.Object { return p.depField("dependencies") }

func (p *Package) DevDependencies() *jsonfile.Object { return p.depField("devDependencies") }

func (p *Package) OptionalDependencies() *jsonfile.Object {
	return p.depField("optionalDependencies")
}

func (p *Package) PeerDependencies() *jsonfile.Object { return p.depField("peerDependencies") }

func (p *Package) depField(key string) *jsonfile.Object {
	deps, _ := jsonfile.GetObject(p.doc, key)
	return deps
}

// Get returns the value of an arbitrary manifest field, nil when absent.
func (p *Package) Get(key string) any {
	v, _ := p.doc.Get(key)
	return v
}

// Set sets an arbitrary manifest field.
func (p *Package) Set(key string, value any) *Package {
	p.doc.Set(key, value)
	return p
}

// ToJSON returns a copy of the document safe to hand out: top-level arrays
// and objects are copied one level deep.
func (p *Package) ToJSON() *jsonfile.Object {
	return shallowCopy(p.doc)
}
