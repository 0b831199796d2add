// Package server holds the status HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines whether
// it runs and where it listens.
package server
