// Package ingest contains the entity loaders and the two-phase pipeline
// that routes changed documents to them.
//
// Loaders are registered in an explicit table (Loaders) and matched against
// staging-relative paths by filename pattern. The pipeline iterates a fixed
// dependency-ordered phase list: independent entities first (status effects,
// items), then the set derivation loader, which reads back the relational
// state the first phase wrote.
//
// Failure scope narrows with distance from the store: a malformed row is
// skipped, an unreadable document is skipped, and only a store-level error
// aborts the remaining work of a phase.
package ingest
