// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to open the scan database. The default
// driver is a local SQLite file so a single scanning station needs no server
// at all; MySQL is supported for installations where several stations share
// one database.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, used by the
// verify command to confirm that the session, reference_item, and scan_event
// tables exist with the expected columns before a scanning session starts.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.VerifyTableColumns(db, "session", []string{"id", "filename", "datetime"})
package database
