// Package types defines the record model, per-type field schemas,
// capability interfaces, wire structures, and standard errors for the
// restrack record API.
package types
