package strtab

import (
	"encoding/json"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Registry resolves reference-token target paths to shared strings. The
// resolved value may itself be a reference token; chains are followed by
// the caller.
type Registry interface {
	Resolve(path string) (string, bool)
}

// MapRegistry is a Registry backed by a flat map of dotted paths.
type MapRegistry map[string]string

// Resolve implements Registry.
func (m MapRegistry) Resolve(path string) (string, bool) {
	v, ok := m[path]
	return v, ok
}

// Paths returns the registry's dotted paths, sorted.
func (m MapRegistry) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

//go:embed common.json
var commonJSON []byte

var (
	commonOnce sync.Once
	commonReg  MapRegistry
)

// DefaultRegistry returns the built-in common registry: the shared
// config-flow strings every integration table may reference.
func DefaultRegistry() Registry {
	commonOnce.Do(func() {
		reg, err := parseRegistry(commonJSON)
		if err != nil {
			// The embedded registry is fixed at build time; a parse failure
			// is a packaging defect, not a runtime condition.
			panic(fmt.Sprintf("strtab: embedded common registry: %v", err))
		}
		commonReg = reg
	})
	return commonReg
}

// LoadRegistry reads a registry from a nested JSON document, flattening it
// to dotted paths.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}
	reg, err := parseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	return reg, nil
}

func parseRegistry(data []byte) (MapRegistry, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := MapRegistry{}
	if err := flatten("", doc, out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten turns nested string-keyed objects into dotted leaf paths.
func flatten(prefix string, node map[string]any, out MapRegistry) error {
	for k, v := range node {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[path] = val
		case map[string]any:
			if err := flatten(path, val, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: value must be a string or an object", path)
		}
	}
	return nil
}
