// Schema validation for string tables. Validation runs at build or test
// time for the maintainer of the resource; the flow engine guarantees by
// construction that every path it queries exists, so end users never see
// these failures.
package strtab

import (
	"fmt"
	"sort"
	"strings"
)

// Problem is one validation finding, tied to the dotted path it was found
// at. Err carries the sentinel category (ErrInvalidKey,
// ErrUnresolvedReference, ...) for errors.Is matching.
type Problem struct {
	Path    string
	Message string
	Err     error
}

func (p Problem) String() string {
	return p.Path + ": " + p.Message
}

// Validate checks the whole catalog and returns every problem found:
// dangling or cyclic reference tokens, placeholders outside the documented
// set for their path, malformed template braces, and key identifiers that
// are not lowercase ASCII.
func (c *Catalog) Validate() []Problem {
	var problems []Problem

	problems = append(problems, c.validateKeys()...)

	for _, path := range c.table.Keys() {
		raw, _ := c.table.value(path)

		if IsReference(raw) {
			if _, err := resolveValue(path, raw, c.registry); err != nil {
				problems = append(problems, Problem{
					Path:    path,
					Message: trimPathPrefix(err.Error(), path),
					Err:     err,
				})
			}
			continue
		}

		problems = append(problems, validateTemplate(path, raw)...)
	}

	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Path != problems[j].Path {
			return problems[i].Path < problems[j].Path
		}
		return problems[i].Message < problems[j].Message
	})
	return problems
}

// Check runs Validate and folds the findings into a single error, or nil
// when the catalog is clean.
func (c *Catalog) Check() error {
	problems := c.Validate()
	if len(problems) == 0 {
		return nil
	}
	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.String()
	}
	return fmt.Errorf("%d problem(s):\n  %s", len(problems), strings.Join(msgs, "\n  "))
}

// validateKeys checks every map key in the table against the identifier
// format: lowercase ASCII letters, digits, underscores.
func (c *Catalog) validateKeys() []Problem {
	var problems []Problem
	check := func(prefix, key string) {
		if !validKey(key) {
			problems = append(problems, Problem{
				Path:    prefix + "." + key,
				Message: fmt.Sprintf("key %q is not a lowercase ASCII identifier", key),
				Err:     ErrInvalidKey,
			})
		}
	}
	for id, s := range c.table.Config.Step {
		check("config.step", id)
		for field := range s.Data {
			check("config.step."+id+".data", field)
		}
	}
	for reason := range c.table.Config.Abort {
		check("config.abort", reason)
	}
	for code := range c.table.Config.Error {
		check("config.error", code)
	}
	for id, s := range c.table.Options.Step {
		check("options.step", id)
		for field := range s.Data {
			check("options.step."+id+".data", field)
		}
	}
	return problems
}

// validateTemplate checks a literal value's placeholders against the
// documented set for its path and flags unbalanced braces.
func validateTemplate(path, value string) []Problem {
	var problems []Problem
	allowed := allowedPlaceholders(path)

	for _, name := range Placeholders(value) {
		if !allowed[name] {
			problems = append(problems, Problem{
				Path:    path,
				Message: fmt.Sprintf("placeholder {%s} is not supplied by the engine for this path", name),
				Err:     ErrMissingSubstitution,
			})
		}
	}

	if strings.Count(value, "{") != strings.Count(value, "}") {
		problems = append(problems, Problem{
			Path:    path,
			Message: "unbalanced braces in template",
			Err:     ErrMissingSubstitution,
		})
	}
	return problems
}

// trimPathPrefix drops the leading "path: " a resolve error repeats, since
// Problem already carries the path.
func trimPathPrefix(msg, path string) string {
	return strings.TrimPrefix(msg, path+": ")
}
