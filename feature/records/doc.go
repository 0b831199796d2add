// Package records is the durable store behind the ingestion pipeline.
//
// Three tables are kept: worlds (registered once at startup), items (one display name
// per item id, possibly the "Unknown Item <id>" placeholder) and sales. All writes are
// insert-or-ignore and commit immediately, so a crash never leaves a partial row.
//
// # Admission
//
// Admit decides what happens to a sale:
//   - Stale: the timestamp is more than AdmissionWindow (7 days) in the past; nothing is written.
//   - Duplicate: a row with the same (timestamp, item_id, price) exists; nothing is written.
//   - Admitted: a new row was inserted.
//
// Sales are not checked against the worlds or items tables.
//
// # Usage
//
//	store := records.NewStore(db, log)
//	if err := store.Migrate(ctx); err != nil {
//	    return err
//	}
//	admission, err := store.Admit(ctx, records.Sale{Timestamp: ts, WorldID: 402, ItemID: 46829, Price: 4592000, Quantity: 1, Buyer: "X"})
package records
