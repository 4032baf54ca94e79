// Reference token parsing and resolution.
//
// A table value of the form [%key:common::config_flow::abort::already_configured%]
// is not literal text: it points at an entry in the shared common registry.
// Token paths use "::" between segments; they are normalized to the dotted
// form before resolution, and already-dotted paths are accepted as-is.
package strtab

import (
	"fmt"
	"strings"
)

const (
	refPrefix = "[%key:"
	refSuffix = "%]"

	// maxRefDepth caps reference chains. Registry entries may themselves be
	// tokens; a chain longer than this is treated as a cycle.
	maxRefDepth = 8
)

// IsReference reports whether a table value is a reference token rather
// than literal display text.
func IsReference(v string) bool {
	return strings.HasPrefix(v, refPrefix) && strings.HasSuffix(v, refSuffix) &&
		len(v) > len(refPrefix)+len(refSuffix)
}

// ReferencePath extracts the normalized dotted target path from a
// reference token. ok is false if v is not a reference token.
func ReferencePath(v string) (path string, ok bool) {
	if !IsReference(v) {
		return "", false
	}
	raw := v[len(refPrefix) : len(v)-len(refSuffix)]
	return strings.ReplaceAll(raw, "::", "."), true
}

// resolveValue follows a (possibly chained) reference token through the
// registry and returns the final literal string. Literal input is returned
// unchanged. path identifies the table entry for error messages.
func resolveValue(path, v string, reg Registry) (string, error) {
	chain := []string{path}
	for depth := 0; depth < maxRefDepth; depth++ {
		target, ok := ReferencePath(v)
		if !ok {
			return v, nil
		}
		chain = append(chain, target)
		next, ok := reg.Resolve(target)
		if !ok {
			return "", fmt.Errorf("%s: target %q: %w", path, target, ErrUnresolvedReference)
		}
		v = next
	}
	return "", fmt.Errorf("%s: chain %s: %w: %w",
		path, strings.Join(chain, " -> "), ErrUnresolvedReference, ErrReferenceCycle)
}
