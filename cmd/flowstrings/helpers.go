// Shared helpers for flowstrings CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emberlink/flowstrings/pkg/strtab"
)

// loadCatalog loads a string table file and binds it to the resolved
// common registry.
func loadCatalog(tablePath string) (*strtab.Catalog, error) {
	table, err := strtab.Load(tablePath)
	if err != nil {
		return nil, err
	}
	reg, err := resolveRegistry()
	if err != nil {
		return nil, err
	}
	return strtab.NewCatalog(table, reg), nil
}

// resolveRegistry picks the common registry following the precedence:
// --registry flag > config.yaml common_registry > built-in registry.
func resolveRegistry() (strtab.Registry, error) {
	path := flagRegistry
	if path == "" {
		path = configRegistry
	}
	if path == "" {
		return strtab.DefaultRegistry(), nil
	}
	return strtab.LoadRegistry(path)
}

// parseSubstitutions turns name=value arguments into a substitution map.
func parseSubstitutions(args []string) (map[string]string, error) {
	subs := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("substitution %q is not name=value", arg)
		}
		subs[name] = value
	}
	return subs, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newLogger builds the console logger used by long-running commands.
func newLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return zap.Must(cfg.Build()).Sugar()
}
