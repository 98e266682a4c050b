// ABOUTME: Configurable npm package name parser: splits "@scope/name" into parts
// ABOUTME: Rules are applied in a fixed order so the first violated rule wins

package pkgname

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// MaxLength is the npm limit on a package name, scope included, counted in
// UTF-16 code units.
const MaxLength = 214

// Fixed error messages; the others embed the offending input.
const (
	msgNil        = "The package name must not be null or undefined"
	msgTooLong    = "The package name cannot be longer than 214 characters"
	msgEmpty      = "The package name must not be empty"
	msgNeedsSlash = "The scope must be followed by a slash"
	msgEmptyScope = "The scope name cannot be empty"
)

// ParsedName holds the components of a package name.
type ParsedName struct {
	// Scope is empty or starts with "@" and contains no "/".
	Scope string
	// UnscopedName is the part after the scope.
	UnscopedName string
}

// String joins the parts back into a package name.
func (p ParsedName) String() string {
	if p.Scope == "" {
		return p.UnscopedName
	}
	return p.Scope + "/" + p.UnscopedName
}

// ParseResult is the outcome of TryParse. Error is empty on success.
type ParseResult struct {
	ParsedName
	Error string
}

// Options configures a Parser.
type Options struct {
	// AllowUpperCase disables the lower-case check on the scope.
	AllowUpperCase bool
}

// Parser validates and splits npm package names such as "@scope/my-package"
// or "my-package".
type Parser struct {
	opts Options
}

// NewParser returns a parser using a copy of opts.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// TryParse parses name and reports the first violated rule in Error.
// It never fails.
func (p *Parser) TryParse(name string) ParseResult {
	return p.tryParse(&name)
}

// TryParseRef is TryParse for values that may be absent, such as a "name"
// field missing from a manifest.
func (p *Parser) TryParseRef(name *string) ParseResult {
	return p.tryParse(name)
}

func (p *Parser) tryParse(ref *string) ParseResult {
	var result ParseResult

	if ref == nil {
		result.Error = msgNil
		return result
	}
	name := *ref

	// Length first so huge inputs are never scanned further.
	if utf16Len(name) > MaxLength {
		result.Error = msgTooLong
		return result
	}

	input := name
	if strings.HasPrefix(input, "@") {
		slash := strings.IndexByte(input, '/')
		if slash <= 0 {
			result.Scope = input
			result.Error = fmt.Sprintf("Error parsing \"%s\": %s", name, msgNeedsSlash)
			return result
		}
		result.Scope = input[:slash]
		input = input[slash+1:]
	}

	result.UnscopedName = input

	if result.Scope == "@" {
		result.Error = fmt.Sprintf("Error parsing \"%s\": %s", name, msgEmptyScope)
		return result
	}

	if result.UnscopedName == "" {
		result.Error = msgEmpty
		return result
	}

	if c := result.UnscopedName[0]; c == '.' || c == '_' {
		result.Error = fmt.Sprintf("The package name \"%s\" starts with an invalid character", name)
		return result
	}

	// Only the scope is checked for case; npm still serves old packages
	// with upper case unscoped names.
	if !p.opts.AllowUpperCase && result.Scope != strings.ToLower(result.Scope) {
		result.Error = fmt.Sprintf("The package scope \"%s\" must not contain upper case characters", result.Scope)
		return result
	}

	// "@scope/unscoped-name" --> "scopeunscoped-name"
	bare := stripScopeSymbols(result.Scope) + result.UnscopedName
	if r, ok := firstInvalidRune(bare); ok {
		result.Error = fmt.Sprintf("The package name \"%s\" contains an invalid character: \"%c\"", name, r)
		return result
	}

	return result
}

// Parse parses name and returns a *ValidationError when any rule fails.
func (p *Parser) Parse(name string) (ParsedName, error) {
	result := p.TryParse(name)
	if result.Error != "" {
		return ParsedName{}, &ValidationError{Name: name, Msg: result.Error}
	}
	return result.ParsedName, nil
}

// GetScope returns the scope of name, or "" when it is unscoped.
func (p *Parser) GetScope(name string) (string, error) {
	parsed, err := p.Parse(name)
	if err != nil {
		return "", err
	}
	return parsed.Scope, nil
}

// GetUnscopedName returns name without its scope.
func (p *Parser) GetUnscopedName(name string) (string, error) {
	parsed, err := p.Parse(name)
	if err != nil {
		return "", err
	}
	return parsed.UnscopedName, nil
}

// IsValidName reports whether name parses without error.
func (p *Parser) IsValidName(name string) bool {
	return p.TryParse(name).Error == ""
}

// Validate returns the parse error for name, if any.
func (p *Parser) Validate(name string) error {
	_, err := p.Parse(name)
	return err
}

// CombineParts is the inverse of Parse. Shape violations in the inputs are
// reported as *StructuralError; the joined name is then validated like any
// other input.
func (p *Parser) CombineParts(scope, unscopedName string) (string, error) {
	if scope != "" && scope[0] != '@' {
		return "", &StructuralError{Msg: `The scope must start with an "@" character`}
	}
	if strings.Contains(scope, "/") {
		return "", &StructuralError{Msg: `The scope must not contain a "/" character`}
	}
	if strings.HasPrefix(unscopedName, "@") {
		return "", &StructuralError{Msg: `The unscopedName cannot start with an "@" character`}
	}
	if strings.Contains(unscopedName, "/") {
		return "", &StructuralError{Msg: `The unscopedName must not contain a "/" character`}
	}

	combined := ParsedName{Scope: scope, UnscopedName: unscopedName}.String()
	if err := p.Validate(combined); err != nil {
		return "", err
	}
	return combined, nil
}

// stripScopeSymbols drops the first and last UTF-16 unit of a scope, matching
// how npm builds the charset-checked form of a name. A split surrogate pair
// decodes to U+FFFD, which the charset check rejects.
func stripScopeSymbols(scope string) string {
	units := utf16.Encode([]rune(scope))
	if len(units) < 2 {
		return ""
	}
	return string(utf16.Decode(units[1 : len(units)-1]))
}

func firstInvalidRune(s string) (rune, bool) {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return r, true
		}
	}
	return 0, false
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
