// Package reconcile provides the entity adapters that plug the synchronized
// store into the core reconcile engine: items and status effects, each
// loaded from the database and from their staged source documents and
// matched against the media bucket.
package reconcile
