// Package names resolves item ids to display names.
//
// Resolution is ordered and stops at the first answer:
//  1. the in-process Cache, if the item was checked within the TTL;
//  2. the record store;
//  3. the remote lookup (XIVAPI), whose answer is written back to the store.
//
// A "not found" answer from the remote source is stored as "Unknown Item <id>" and is
// never looked up again. Any other remote failure yields ErrUnresolved and leaves the
// store untouched; the cache entry written before the store read keeps the item from
// being retried until the TTL elapses.
//
// # Cache freshness
//
// An entry is fresh while now - checked < TTL (default 30 seconds). Items that were
// resolved are found in the store once their entry expires, so only failed lookups
// ever reach the remote source twice.
package names
