// ABOUTME: Package-level helpers over a default Parser with strict options
// ABOUTME: Mirrors the Parser API for callers that need no configuration

package pkgname

var defaultParser = NewParser(Options{})

// TryParse parses name with the default parser.
func TryParse(name string) ParseResult {
	return defaultParser.TryParse(name)
}

// TryParseRef parses a possibly absent name with the default parser.
func TryParseRef(name *string) ParseResult {
	return defaultParser.TryParseRef(name)
}

// Parse parses name with the default parser.
func Parse(name string) (ParsedName, error) {
	return defaultParser.Parse(name)
}

// GetScope returns the scope of name.
func GetScope(name string) (string, error) {
	return defaultParser.GetScope(name)
}

// GetUnscopedName returns name without its scope.
func GetUnscopedName(name string) (string, error) {
	return defaultParser.GetUnscopedName(name)
}

// IsValidName reports whether name is a valid package name.
func IsValidName(name string) bool {
	return defaultParser.IsValidName(name)
}

// Validate returns an error when name is not a valid package name.
func Validate(name string) error {
	return defaultParser.Validate(name)
}

// CombineParts joins scope and unscopedName into a validated package name.
func CombineParts(scope, unscopedName string) (string, error) {
	return defaultParser.CombineParts(scope, unscopedName)
}
