// Package cmd holds the stonks command line.
//
//   - start: bootstrap the region's worlds and ingest the sales feed
//   - retry-items: resolve names for item ids listed in a file
//   - snapshot: upload a copy of the database to object storage
package cmd
