// ABOUTME: Dependency specifier resolver: npm registry, file, git, alias, remote
// ABOUTME: Detects the reference type from the spec format; deterministic, no I/O

package specifier

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/mauromedda/pkgkit/internal/pkgname"
)

const semverPrefix = "semver:"

var (
	filespec    = regexp.MustCompile(`^(?:\.|~/|/|\\|[a-zA-Z]:)`)
	tarball     = regexp.MustCompile(`(?i)\.(?:tgz|tar\.gz|tar)$`)
	urlScheme   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)
	gitScheme   = regexp.MustCompile(`^(?:git[+:]|ssh:)`)
	scpGitURL   = regexp.MustCompile(`^[^@/:]+@[^:.]+\.[^:]+:.+$`)
	tagSafeRune = regexp.MustCompile(`^[A-Za-z0-9\-_.!~*'()]+$`)
)

// Resolve classifies spec as a reference to package name, resolving relative
// paths against where (the directory of the referring manifest). An empty
// where means the current directory.
func Resolve(name, spec, where string) (*Resolved, error) {
	return ResolveWith(nil, name, spec, where)
}

// ResolveWith is Resolve with names checked by parser; nil means the strict
// default parser.
func ResolveWith(parser *pkgname.Parser, name, spec, where string) (*Resolved, error) {
	if parser == nil {
		parser = pkgname.NewParser(pkgname.Options{})
	}
	if where == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		where = cwd
	}

	res := &Resolved{
		Name:    name,
		RawSpec: spec,
		Raw:     name,
	}
	if name != "" {
		if err := parser.Validate(name); err != nil {
			return nil, fmt.Errorf("invalid package name: %w", err)
		}
		if name[0] == '@' {
			res.Scope = name[:strings.IndexByte(name, '/')]
		}
		if spec != "" {
			res.Raw = name + "@" + spec
		}
	} else {
		res.Raw = spec
	}

	spec = strings.TrimSpace(spec)

	switch {
	case strings.HasPrefix(strings.ToLower(spec), "file:") || filespec.MatchString(spec):
		return fromFile(res, spec, where), nil
	case strings.HasPrefix(strings.ToLower(spec), "npm:"):
		return fromAlias(parser, res, spec, where)
	}

	if hosted := ParseHosted(spec); hosted != nil {
		return fromGit(res, hosted), nil
	}

	switch {
	case urlScheme.MatchString(spec) || gitScheme.MatchString(spec) || scpGitURL.MatchString(spec):
		return fromURL(res, spec)
	case strings.Contains(spec, "/") || tarball.MatchString(spec):
		return fromFile(res, spec, where), nil
	}

	return fromRegistry(res, spec)
}

func fromFile(res *Resolved, spec, where string) *Resolved {
	res.Type = TypeDirectory
	if tarball.MatchString(spec) {
		res.Type = TypeFile
	}

	p := spec
	if strings.HasPrefix(strings.ToLower(p), "file:") {
		p = p[len("file:"):]
		// file:///abs/path and file://localhost/abs/path
		if strings.HasPrefix(p, "//") {
			p = strings.TrimPrefix(p[2:], "localhost")
		}
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(where, p)
	}
	res.FetchSpec = filepath.Clean(p)

	rel, err := filepath.Rel(where, res.FetchSpec)
	if err != nil {
		rel = res.FetchSpec
	}
	if rel == "." {
		rel = ""
	}
	res.SaveSpec = "file:" + filepath.ToSlash(rel)
	return res
}

func fromAlias(parser *pkgname.Parser, res *Resolved, spec, where string) (*Resolved, error) {
	arg := spec[len("npm:"):]
	name, sub := splitNameSpec(arg)
	subSpec, err := ResolveWith(parser, name, sub, where)
	if err != nil {
		return nil, fmt.Errorf("resolving alias %s: %w", spec, err)
	}
	if !subSpec.Registry {
		return nil, fmt.Errorf("aliases only work for registry deps: %s", spec)
	}
	res.Type = TypeAlias
	res.SubSpec = subSpec
	res.SaveSpec = spec
	res.FetchSpec = subSpec.FetchSpec
	return res, nil
}

func fromGit(res *Resolved, hosted *GitHost) *Resolved {
	res.Type = TypeGit
	res.Hosted = hosted
	res.SaveSpec = hosted.String()
	res.FetchSpec = hosted.FetchURL()
	setGitCommittish(res, hosted.Committish)
	return res
}

func fromURL(res *Resolved, spec string) (*Resolved, error) {
	lower := strings.ToLower(spec)
	switch {
	case gitScheme.MatchString(lower) || scpGitURL.MatchString(spec):
		return fromGit(res, parseGenericGit(spec)), nil
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		res.Type = TypeRemote
		res.SaveSpec = spec
		res.FetchSpec = spec
		return res, nil
	default:
		return nil, fmt.Errorf("unsupported URL type %q", spec)
	}
}

func setGitCommittish(res *Resolved, committish string) {
	if strings.HasPrefix(committish, semverPrefix) {
		res.GitRange = strings.TrimPrefix(committish, semverPrefix)
		return
	}
	res.GitCommittish = committish
}

func fromRegistry(res *Resolved, spec string) (*Resolved, error) {
	res.Registry = true
	if spec == "" {
		spec = "latest"
	}
	res.FetchSpec = spec

	if isVersion(spec) {
		res.Type = TypeVersion
		return res, nil
	}
	if spec == "*" || isRange(spec) {
		res.Type = TypeRange
		return res, nil
	}
	if !tagSafeRune.MatchString(spec) {
		return nil, fmt.Errorf("invalid tag name %q: tags may not have any characters that encodeURIComponent encodes", spec)
	}
	res.Type = TypeTag
	return res, nil
}

// isVersion accepts a full semver version with an optional "=" or "v" prefix.
func isVersion(spec string) bool {
	v := strings.TrimPrefix(strings.TrimPrefix(spec, "="), "v")
	_, err := semver.StrictNewVersion(v)
	return err == nil
}

func isRange(spec string) bool {
	_, err := semver.NewConstraint(spec)
	return err == nil
}
