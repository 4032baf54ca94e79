package strtab

import "fmt"

// Catalog binds an immutable Table to the Registry its reference tokens
// resolve through. Lookup and Render are pure functions of the catalog
// contents, so a Catalog is safe for concurrent readers without locking.
type Catalog struct {
	table    *Table
	registry Registry
}

// NewCatalog creates a Catalog over table. A nil registry selects the
// built-in common registry.
func NewCatalog(table *Table, registry Registry) *Catalog {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Catalog{table: table, registry: registry}
}

// Table returns the underlying table.
func (c *Catalog) Table() *Table { return c.table }

// Keys returns every dotted path present in the table, sorted.
func (c *Catalog) Keys() []string { return c.table.Keys() }

// Lookup returns the literal string at a dotted path such as
// "config.step.user.data.host". Reference tokens are resolved through the
// registry, following chains up to the depth cap.
//
// Returns ErrMissingKey when the path does not exist and
// ErrUnresolvedReference when a token's target is absent from the registry.
func (c *Catalog) Lookup(path string) (string, error) {
	raw, ok := c.table.value(path)
	if !ok {
		return "", fmt.Errorf("%s: %w", path, ErrMissingKey)
	}
	return resolveValue(path, raw, c.registry)
}

// Render resolves path per Lookup, then replaces every {placeholder} with
// the corresponding substitution. Returns ErrMissingSubstitution when a
// placeholder has no entry; unused substitutions are ignored.
func (c *Catalog) Render(path string, substitutions map[string]string) (string, error) {
	resolved, err := c.Lookup(path)
	if err != nil {
		return "", err
	}
	return substitute(path, resolved, substitutions)
}

// substitute fills {name}-style tokens in a resolved template.
func substitute(path, template string, substitutions map[string]string) (string, error) {
	var out []byte
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '{' {
			out = append(out, ch)
			continue
		}
		rest := template[i:]
		end := indexCloseBrace(rest)
		name := ""
		if end > 0 {
			name = rest[1:end]
		}
		if !validKey(name) {
			out = append(out, ch)
			continue
		}
		value, ok := substitutions[name]
		if !ok {
			return "", fmt.Errorf("%s: placeholder {%s}: %w", path, name, ErrMissingSubstitution)
		}
		out = append(out, value...)
		i += end
	}
	return string(out), nil
}

func indexCloseBrace(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] == '}' {
			return i
		}
	}
	return -1
}
