// ABOUTME: Splits "name@spec" command-line arguments into name and spec
// ABOUTME: Handles scoped packages (@scope/name@range) and bare paths or URLs

package specifier

import (
	"strings"

	"github.com/mauromedda/pkgkit/internal/pkgname"
)

// ParseArg resolves an install-style argument such as "lodash@^4",
// "@scope/name@1.2.3", "./local/dir" or "github:user/repo#v1".
// Paths and URLs carry no name.
func ParseArg(arg, where string) (*Resolved, error) {
	return ParseArgWith(nil, arg, where)
}

// ParseArgWith is ParseArg with names checked by parser.
func ParseArgWith(parser *pkgname.Parser, arg, where string) (*Resolved, error) {
	arg = strings.TrimSpace(arg)
	if isBareReference(arg) {
		return ResolveWith(parser, "", arg, where)
	}
	name, spec := splitNameSpec(arg)
	return ResolveWith(parser, name, spec, where)
}

// isBareReference reports whether arg is a path or URL rather than
// "name[@spec]".
func isBareReference(arg string) bool {
	if strings.HasPrefix(strings.ToLower(arg), "file:") || filespec.MatchString(arg) {
		return true
	}
	if urlScheme.MatchString(arg) || gitScheme.MatchString(arg) || scpGitURL.MatchString(arg) {
		return true
	}
	if ParseHosted(arg) != nil {
		return true
	}
	// "@scope/name" is a name; any other slash means a path.
	return !strings.HasPrefix(arg, "@") && strings.Contains(arg, "/")
}

// splitNameSpec splits a package name and optional spec.
// Handles scoped packages: @scope/name@version
func splitNameSpec(raw string) (name, spec string) {
	if strings.HasPrefix(raw, "@") {
		// Scoped: find the second @ (spec separator)
		rest := raw[1:]
		if idx := strings.Index(rest, "@"); idx >= 0 {
			return raw[:idx+1], rest[idx+1:]
		}
		return raw, ""
	}

	if before, after, ok := strings.Cut(raw, "@"); ok {
		return before, after
	}

	return raw, ""
}
