// Package resolve turns internal references in export documents into
// website-facing values: localization keys become display strings and
// internal content paths become public media paths.
//
// The Resolver is built once per sync run from the staged localization
// document and passed into every loader; there is no ambient or static
// state. Lookup misses degrade to empty strings so that localization gaps
// never block ingest, but a localization document that cannot be loaded at
// all aborts the run before any loading starts.
package resolve
