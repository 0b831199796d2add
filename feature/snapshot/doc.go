// Package snapshot uploads point-in-time copies of the SQLite database to object
// storage.
//
// A snapshot is taken with VACUUM INTO, which produces a consistent copy while the
// ingestion pipeline keeps writing. Objects are named
// snapshots/stonks-<UTC timestamp>.db and only the newest storage.keep_snapshots
// are kept.
package snapshot
