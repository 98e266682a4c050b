// ABOUTME: Environment variable expansion in config string fields
// ABOUTME: Replaces ${VAR} patterns with os.Getenv values; unset vars become empty

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	if s.SavePrefix != nil {
		prefix := expandEnv(*s.SavePrefix)
		s.SavePrefix = &prefix
	}
	s.Indent = expandEnv(s.Indent)

	if len(s.Packages) > 0 {
		patterns := make([]string, len(s.Packages))
		for i, p := range s.Packages {
			patterns[i] = expandEnv(p)
		}
		s.Packages = patterns
	}
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
