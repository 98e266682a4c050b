// ABOUTME: Resolved dependency specifier types: registry, directory, git, alias
// ABOUTME: Type tells how a reference to a package is written in a manifest

package specifier

// Type classifies how a dependency reference is expressed.
type Type int

const (
	TypeVersion Type = iota
	TypeRange
	TypeTag
	TypeDirectory
	TypeFile
	TypeGit
	TypeRemote
	TypeAlias
)

// String returns the npm name of the type.
func (t Type) String() string {
	switch t {
	case TypeVersion:
		return "version"
	case TypeRange:
		return "range"
	case TypeTag:
		return "tag"
	case TypeDirectory:
		return "directory"
	case TypeFile:
		return "file"
	case TypeGit:
		return "git"
	case TypeRemote:
		return "remote"
	case TypeAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// IsRegistry reports whether t is resolved against a package registry.
func (t Type) IsRegistry() bool {
	return t == TypeVersion || t == TypeRange || t == TypeTag
}

// Resolved describes a classified dependency reference.
type Resolved struct {
	Type Type
	// Registry is true for version, range and tag references.
	Registry bool

	Name  string // package name, may be empty for bare arguments
	Scope string // "@scope" or empty
	Raw   string // "name@spec" as given
	// RawSpec is the spec as given, before any normalization.
	RawSpec string
	// SaveSpec is how the reference is written back to a manifest. Empty for
	// registry references, which are saved by version.
	SaveSpec string
	// FetchSpec is what a fetcher would use: a version/range/tag, an absolute
	// path, or a git URL without committish.
	FetchSpec string

	// At most one of GitCommittish and GitRange is set, and only for git.
	GitCommittish string
	GitRange      string
	Hosted        *GitHost

	// SubSpec is the aliased reference for "npm:" specs.
	SubSpec *Resolved
}

// String returns the raw "name@spec" form.
func (r *Resolved) String() string {
	return r.Raw
}
