// Package checks implements the individual integrity checks: schema
// verification and referential consistency of the association tables.
package checks
