// ABOUTME: Error types for package name parsing and combining
// ABOUTME: ValidationError carries the violated rule; StructuralError a bad part

package pkgname

// ValidationError reports which naming rule a package name violates.
type ValidationError struct {
	Name string
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// StructuralError is returned by CombineParts when a scope or unscoped name
// has the wrong shape before the joined name is validated.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return e.Msg
}
