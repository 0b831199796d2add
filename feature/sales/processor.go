package sales

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/samsimpson1/stonks/core/feed"
	"github.com/samsimpson1/stonks/feature/names"
	"github.com/samsimpson1/stonks/feature/records"
	"github.com/samsimpson1/stonks/feature/worlds"

	"go.uber.org/zap"
)

// Resolver resolves item names.
type Resolver interface {
	Resolve(ctx context.Context, itemID int64) (string, error)
}

// Recorder admits sales into durable storage.
type Recorder interface {
	Admit(ctx context.Context, sale records.Sale) (records.Admission, error)
}

// Stats counts processing outcomes since startup.
type Stats struct {
	Batches    uint64 `json:"batches"`
	Admitted   uint64 `json:"admitted"`
	Duplicate  uint64 `json:"duplicate"`
	Stale      uint64 `json:"stale"`
	Unresolved uint64 `json:"unresolved"`
}

// Processor handles feed batches: for every sale it resolves the item name, then
// offers the sale to the recorder.
type Processor struct {
	resolver Resolver
	recorder Recorder
	catalog  worlds.Catalog
	logger   *zap.Logger

	batches    atomic.Uint64
	admitted   atomic.Uint64
	duplicate  atomic.Uint64
	stale      atomic.Uint64
	unresolved atomic.Uint64
}

// NewProcessor creates a new sale processor.
func NewProcessor(resolver Resolver, recorder Recorder, catalog worlds.Catalog, logger *zap.Logger) *Processor {
	return &Processor{
		resolver: resolver,
		recorder: recorder,
		catalog:  catalog,
		logger:   logger,
	}
}

// HandleBatch processes the sales of a batch in order.
// Storage work runs to completion even if ctx is cancelled, so a shutdown never
// interrupts a write. Only storage failures are returned.
func (p *Processor) HandleBatch(ctx context.Context, batch feed.SaleBatch) error {
	ctx = context.WithoutCancel(ctx)
	p.batches.Add(1)

	for _, sale := range batch.Sales {
		if err := p.process(ctx, batch.ItemID, batch.WorldID, sale); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) process(ctx context.Context, itemID, worldID int64, sale feed.Sale) error {
	l := p.logger.With(zap.Int64("item_id", itemID), zap.Int64("world_id", worldID))

	itemName, err := p.resolver.Resolve(ctx, itemID)
	if err != nil {
		if !errors.Is(err, names.ErrUnresolved) {
			return fmt.Errorf("failed to resolve item %d: %w", itemID, err)
		}
		p.unresolved.Add(1)
		l.Warn("Item name unresolved", zap.Error(err))
	}

	admission, err := p.recorder.Admit(ctx, records.Sale{
		Timestamp: sale.Timestamp,
		WorldID:   worldID,
		ItemID:    itemID,
		Price:     sale.PricePerUnit,
		Quantity:  sale.Quantity,
		Buyer:     sale.BuyerName,
	})
	if err != nil {
		return err
	}

	switch admission {
	case records.Admitted:
		p.admitted.Add(1)
		l.Info("Sale recorded",
			zap.String("world_name", p.catalog[worldID]),
			zap.String("item_name", itemName),
			zap.Int64("price", sale.PricePerUnit),
			zap.Int64("quantity", sale.Quantity),
		)
	case records.Duplicate:
		p.duplicate.Add(1)
		l.Debug("Duplicate sale ignored", zap.Int64("timestamp", sale.Timestamp), zap.Int64("price", sale.PricePerUnit))
	case records.Stale:
		p.stale.Add(1)
	}
	return nil
}

// Stats returns a snapshot of the processing counters.
func (p *Processor) Stats() Stats {
	return Stats{
		Batches:    p.batches.Load(),
		Admitted:   p.admitted.Load(),
		Duplicate:  p.duplicate.Load(),
		Stale:      p.stale.Load(),
		Unresolved: p.unresolved.Load(),
	}
}
