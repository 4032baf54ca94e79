// Standard errors for string table lookup, rendering, and validation.
package strtab

import "errors"

// Lookup and render errors. All are surfaced wrapped with the offending
// path, so callers match them with errors.Is.
var (
	// ErrMissingKey is returned when a dotted path does not exist in the table.
	ErrMissingKey = errors.New("missing key")

	// ErrUnresolvedReference is returned when a reference token's target path
	// does not exist in the common registry.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrReferenceCycle is wrapped into ErrUnresolvedReference when a chain of
	// reference tokens exceeds the resolution depth cap.
	ErrReferenceCycle = errors.New("reference cycle")

	// ErrMissingSubstitution is returned when a template placeholder has no
	// corresponding entry in the substitution map.
	ErrMissingSubstitution = errors.New("missing substitution")

	// ErrInvalidKey is reported by Validate for keys that are not lowercase
	// ASCII identifiers.
	ErrInvalidKey = errors.New("invalid key format")
)
