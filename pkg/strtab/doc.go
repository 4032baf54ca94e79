// Package strtab defines the string table resource for smart-home
// integration configuration flows: the table data model, dotted-path
// lookup, reference-token resolution through a shared common registry,
// template rendering, validation, and JSON load/save.
package strtab
