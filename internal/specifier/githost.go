// ABOUTME: GitHost models a git dependency URL with a mutable committish
// ABOUTME: Recognizes github/gitlab/bitbucket shortcuts, URLs and scp-style refs

package specifier

import (
	"net/url"
	"regexp"
	"strings"
)

// Representation is the syntax a git reference was written in. String()
// reproduces it.
type Representation string

const (
	RepShortcut Representation = "shortcut" // github:user/repo
	RepHTTPS    Representation = "https"    // git+https://github.com/user/repo.git
	RepSSHURL   Representation = "sshurl"   // git+ssh://git@github.com/user/repo.git
	RepSSH      Representation = "ssh"      // git@github.com:user/repo.git
	RepGit      Representation = "git"      // git://github.com/user/repo.git
	RepURL      Representation = "url"      // any other git URL, kept verbatim
)

var knownHosts = map[string]string{
	"github.com":    "github",
	"gitlab.com":    "gitlab",
	"bitbucket.org": "bitbucket",
}

var hostDomains = map[string]string{
	"github":    "github.com",
	"gitlab":    "gitlab.com",
	"bitbucket": "bitbucket.org",
}

var (
	// user/repo with an optional #fragment; npm reads it as a GitHub shortcut.
	githubShorthand = regexp.MustCompile(`^[^@%/\s.\-][^:@%/\s]*/[^@\s/%]+(?:#.*)?$`)
	// [user@]host:path without a scheme.
	scpLike = regexp.MustCompile(`^(?:([^@/:]+)@)?([^@/:]+\.[^@/:]+):(.+)$`)
)

// GitHost is a git reference. Committish may be changed and the reference
// re-serialized with String.
type GitHost struct {
	Type       string // github, gitlab, bitbucket, or empty for other hosts
	Domain     string
	User       string
	Project    string
	Committish string
	Default    Representation

	// base is the verbatim URL without fragment for RepURL hosts.
	base string
}

// String serializes the reference in its Default representation, with
// "#<committish>" appended when Committish is set.
func (h *GitHost) String() string {
	var s string
	path := h.User + "/" + h.Project
	switch h.Default {
	case RepShortcut:
		s = h.Type + ":" + path
	case RepHTTPS:
		s = "git+https://" + h.Domain + "/" + path + ".git"
	case RepSSHURL:
		s = "git+ssh://git@" + h.Domain + "/" + path + ".git"
	case RepSSH:
		s = "git@" + h.Domain + ":" + path + ".git"
	case RepGit:
		s = "git://" + h.Domain + "/" + path + ".git"
	default:
		s = h.base
	}
	if h.Committish != "" {
		s += "#" + h.Committish
	}
	return s
}

// FetchURL returns a cloneable URL without committish.
func (h *GitHost) FetchURL() string {
	if h.Type == "" {
		return strings.TrimPrefix(h.base, "git+")
	}
	if h.Default == RepSSH || h.Default == RepSSHURL {
		return "git+ssh://git@" + h.Domain + "/" + h.User + "/" + h.Project + ".git"
	}
	return "git+https://" + h.Domain + "/" + h.User + "/" + h.Project + ".git"
}

// ParseHosted recognizes references to the known git hosts. It returns nil
// for anything else, including git URLs on other hosts.
func ParseHosted(spec string) *GitHost {
	ref, committish, _ := strings.Cut(spec, "#")

	// github:user/repo, gitlab:group/repo, bitbucket:user/repo
	if prefix, rest, ok := strings.Cut(ref, ":"); ok {
		if domain, known := hostDomains[prefix]; known {
			user, project, ok := splitRepoPath(rest)
			if !ok {
				return nil
			}
			return &GitHost{
				Type: prefix, Domain: domain, User: user, Project: project,
				Committish: committish, Default: RepShortcut,
			}
		}
	}

	if githubShorthand.MatchString(spec) {
		user, project, ok := splitRepoPath(ref)
		if !ok {
			return nil
		}
		return &GitHost{
			Type: "github", Domain: "github.com", User: user, Project: project,
			Committish: committish, Default: RepShortcut,
		}
	}

	if !strings.Contains(ref, "://") {
		m := scpLike.FindStringSubmatch(ref)
		if m == nil {
			return nil
		}
		typ, known := knownHosts[m[2]]
		if !known {
			return nil
		}
		user, project, ok := splitRepoPath(m[3])
		if !ok {
			return nil
		}
		return &GitHost{
			Type: typ, Domain: m[2], User: user, Project: project,
			Committish: committish, Default: RepSSH,
		}
	}

	u, err := url.Parse(strings.TrimPrefix(ref, "git+"))
	if err != nil {
		return nil
	}
	typ, known := knownHosts[strings.TrimPrefix(u.Hostname(), "www.")]
	if !known {
		return nil
	}
	var rep Representation
	switch u.Scheme {
	case "https", "http":
		rep = RepHTTPS
	case "ssh":
		rep = RepSSHURL
	case "git":
		rep = RepGit
	default:
		return nil
	}
	user, project, ok := splitRepoPath(strings.TrimPrefix(u.Path, "/"))
	if !ok {
		return nil
	}
	return &GitHost{
		Type: typ, Domain: hostDomains[typ], User: user, Project: project,
		Committish: committish, Default: rep,
	}
}

// parseGenericGit wraps a git URL on an unknown host.
func parseGenericGit(spec string) *GitHost {
	ref, committish, _ := strings.Cut(spec, "#")
	return &GitHost{Committish: committish, Default: RepURL, base: ref}
}

// splitRepoPath splits "user/repo(.git)" into its parts. GitLab subgroups
// stay in the user part.
func splitRepoPath(p string) (user, project string, ok bool) {
	p = strings.TrimSuffix(strings.TrimSuffix(p, "/"), ".git")
	idx := strings.LastIndex(p, "/")
	if idx <= 0 || idx == len(p)-1 {
		return "", "", false
	}
	return p[:idx], p[idx+1:], true
}
