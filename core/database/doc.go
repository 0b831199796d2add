// Package database opens the record database and inspects its schema.
//
// It wraps GORM so the rest of the service never deals with DSNs. SQLite is the
// default driver (one file, one connection, WAL journal with synchronous commits);
// MySQL is supported for deployments that keep sale history on a shared server.
//
// # Connect
//
// Connect builds the dialector, installs a zap-backed GORM logger that traces every
// statement at debug level, pins the pool to a single connection and pings the server.
//
// # Schema Inspection
//
// GetTableColumns and GetIndexNames report the physical layout of a table. They are
// used to verify that migrations produced the expected columns and secondary indexes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database, log)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//	defer database.Close(db)
package database
