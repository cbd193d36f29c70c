// Package models defines the two data shapes the pipeline moves between:
// the raw export document structures (source.go) and the normalized GORM
// models persisted in the relational store (db.go).
//
// The store schema is provisioned externally; the GORM models mirror it for
// querying and upserting but are never auto-migrated.
package models
