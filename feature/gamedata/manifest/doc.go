// Package manifest implements change detection for staged export documents.
//
// Every JSON document under the staging root is reduced to a canonical
// SHA-256 fingerprint that is insensitive to key order and formatting. The
// differ compares the current fingerprints against the manifest persisted by
// the previous run and emits added/updated/removed work lists, so a run over
// N unchanged documents does O(N) hashing but zero parsing or loading.
//
// The manifest is the sole source of truth for "has this document changed":
// it reflects exactly the set scanned by the most recent differencing pass.
// A document that fails to hash is excluded for the run and will reappear as
// added once readable again.
package manifest
