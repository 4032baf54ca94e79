// Template placeholder extraction and the documented placeholder contract.
package strtab

import "strings"

// Placeholders returns the placeholder names used in a template string, in
// order of first appearance, without duplicates. Only well-formed tokens
// ({name} with an identifier inside) count; stray braces are a template
// syntax problem reported by Validate, not a placeholder.
func Placeholders(template string) []string {
	var names []string
	seen := map[string]bool{}
	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			break
		}
		name := template[i+1 : i+end]
		if validKey(name) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i += end
		}
	}
	return names
}

// placeholderSets is the contract with the configuration-flow engine: for
// each templated path, the exact set of values the engine supplies at
// render time. Paths absent from this table must not use placeholders.
var placeholderSets = map[string]map[string]bool{
	"config.flow_title":                      {"name": true},
	"config.step.confirm.description":        {"name": true},
	"config.step.reauth_confirm.description": {"host": true},
}

// allowedPlaceholders returns the documented placeholder set for a path.
// The empty set means the path must hold plain text.
func allowedPlaceholders(path string) map[string]bool {
	return placeholderSets[path]
}

// validKey reports whether a key or placeholder name is a case-sensitive
// ASCII identifier of lowercase letters, digits, and underscores, starting
// with a letter.
func validKey(k string) bool {
	if k == "" || k[0] < 'a' || k[0] > 'z' {
		return false
	}
	for i := 1; i < len(k); i++ {
		c := k[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
