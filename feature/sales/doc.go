// Package sales turns feed batches into stored sales.
//
// The Processor is the feed Handler of the pipeline. For each sale of a batch, in
// order, it resolves the item name (best-effort: an unresolved name is logged and the
// sale is still stored) and then offers the sale to the record store. Stale and
// duplicate sales are counted and dropped; admitted sales produce an info log event
// carrying the world name and item id. A storage failure stops the batch and is
// returned to the feed loop.
//
// # HTTP Endpoints
//
//   - GET /sales/stats : processing counters and the feed connection state.
package sales
