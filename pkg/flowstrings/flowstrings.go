// Package flowstrings carries module-level metadata shared by the CLI.
package flowstrings

// Version is the current flowstrings release.
const Version = "0.3.0"
