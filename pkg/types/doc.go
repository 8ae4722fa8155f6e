// Package types defines the shared Go types used by the engines, the server,
// and the CLI. These are the canonical in-memory shapes of child records,
// independent of any JSON or YAML wire format.
package types
