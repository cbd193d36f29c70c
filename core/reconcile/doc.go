// Package reconcile provides a generic system for reconciling three sources
// of truth: the database, the staged source documents, and the media object
// store.
//
// The engine builds a union of entity keys across all sources, detects
// presence and absence per source, and identifies field mismatches between
// the database and the staged documents. Indices are built concurrently and
// can be cached with a TTL for repeated targeted lookups.
//
// Each entity kind plugs in through the Adapter interface, which defines how
// to load and key its data from each source and how to compare fields.
//
// The plan produced by ReconcileWithPlan is advisory: it names the purge,
// sync and fetch actions an operator would take, but nothing in this package
// mutates any source. The sync pipeline is the only writer.
package reconcile
