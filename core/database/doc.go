// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// configure MySQL or SQLite connections based on the application's
// configuration. The synchronization pipeline never creates or alters
// schema: provisioning is an external, one-time step, and this package only
// verifies that the expected tables exist.
//
// # Connect
//
// The generic Connect function establishes a connection to the store. The
// driver is chosen by the Driver config field so the same pipeline can run
// against the hosted MySQL website database or a local SQLite file.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, which the
// integrity feature uses to verify that the provisioned tables match the
// columns the loaders write.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.VerifyColumns(db, "Items", []string{"key", "name"})
package database
