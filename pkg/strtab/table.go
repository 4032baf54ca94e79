package strtab

import (
	"sort"
	"strings"
)

// Table is the root of a string table resource. It mirrors the on-disk
// strings.json layout: a config section for the configuration flow and an
// options section for the options flow. A Table is loaded once and never
// mutated afterwards; reloading replaces the whole value.
type Table struct {
	Config  ConfigSection  `json:"config"`
	Options OptionsSection `json:"options,omitzero"`
}

// ConfigSection holds the strings for the configuration flow: the flow
// title template, per-step strings, and the abort and error channels.
type ConfigSection struct {
	FlowTitle string            `json:"flow_title,omitempty"`
	Step      map[string]Step   `json:"step,omitempty"`
	Abort     map[string]string `json:"abort,omitempty"`
	Error     map[string]string `json:"error,omitempty"`
}

// Step holds the strings for one screen of a flow. Data maps field
// identifiers to their labels; a label may be a reference token.
type Step struct {
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Data        map[string]string `json:"data,omitempty"`
}

// OptionsSection holds the strings for the options flow.
type OptionsSection struct {
	Step map[string]Step `json:"step,omitempty"`
}

// Path segment names used in dotted lookup paths.
const (
	segConfig      = "config"
	segOptions     = "options"
	segFlowTitle   = "flow_title"
	segStep        = "step"
	segAbort       = "abort"
	segError       = "error"
	segTitle       = "title"
	segDescription = "description"
	segData        = "data"
)

// Value returns the raw string at a dotted path, without resolving
// reference tokens. Most callers want Catalog.Lookup instead; Value exists
// for tooling that needs to see tokens as written.
func (t *Table) Value(path string) (string, bool) {
	return t.value(path)
}

// value returns the raw (unresolved) string at a dotted path.
func (t *Table) value(path string) (string, bool) {
	seg := strings.Split(path, ".")
	switch seg[0] {
	case segConfig:
		return t.Config.value(seg[1:])
	case segOptions:
		if len(seg) >= 2 && seg[1] == segStep {
			return stepValue(t.Options.Step, seg[2:])
		}
	}
	return "", false
}

func (c *ConfigSection) value(seg []string) (string, bool) {
	if len(seg) == 0 {
		return "", false
	}
	switch seg[0] {
	case segFlowTitle:
		if len(seg) == 1 && c.FlowTitle != "" {
			return c.FlowTitle, true
		}
	case segStep:
		return stepValue(c.Step, seg[1:])
	case segAbort:
		if len(seg) == 2 {
			v, ok := c.Abort[seg[1]]
			return v, ok
		}
	case segError:
		if len(seg) == 2 {
			v, ok := c.Error[seg[1]]
			return v, ok
		}
	}
	return "", false
}

// stepValue navigates step.<id>.{title,description,data.<field>}.
func stepValue(steps map[string]Step, seg []string) (string, bool) {
	if len(seg) < 2 {
		return "", false
	}
	s, ok := steps[seg[0]]
	if !ok {
		return "", false
	}
	switch {
	case len(seg) == 2 && seg[1] == segTitle:
		return s.Title, s.Title != ""
	case len(seg) == 2 && seg[1] == segDescription:
		return s.Description, s.Description != ""
	case len(seg) == 3 && seg[1] == segData:
		v, ok := s.Data[seg[2]]
		return v, ok
	}
	return "", false
}

// Keys returns every dotted path present in the table, sorted.
func (t *Table) Keys() []string {
	var keys []string
	if t.Config.FlowTitle != "" {
		keys = append(keys, segConfig+"."+segFlowTitle)
	}
	keys = append(keys, stepKeys(segConfig, t.Config.Step)...)
	for k := range t.Config.Abort {
		keys = append(keys, segConfig+"."+segAbort+"."+k)
	}
	for k := range t.Config.Error {
		keys = append(keys, segConfig+"."+segError+"."+k)
	}
	keys = append(keys, stepKeys(segOptions, t.Options.Step)...)
	sort.Strings(keys)
	return keys
}

func stepKeys(section string, steps map[string]Step) []string {
	var keys []string
	for id, s := range steps {
		prefix := section + "." + segStep + "." + id
		if s.Title != "" {
			keys = append(keys, prefix+"."+segTitle)
		}
		if s.Description != "" {
			keys = append(keys, prefix+"."+segDescription)
		}
		for field := range s.Data {
			keys = append(keys, prefix+"."+segData+"."+field)
		}
	}
	return keys
}
