// Package universalis reads the world directory published by the Universalis API.
//
// Only two read-only endpoints are used, both at startup: the data-center list (which
// worlds belong to which data center) and the flat world list (id → name).
package universalis
