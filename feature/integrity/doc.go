// Package integrity exposes read-only health checks over the synchronized
// store: schema verification against the expected models, dangling
// association detection, and three-way reconciliation of database rows
// against staged source documents and media storage.
//
// Every check is advisory. Nothing in this package writes to the database,
// the staging tree, or the bucket.
package integrity
