package names

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samsimpson1/stonks/core/xivapi"

	"go.uber.org/zap"
)

// ErrUnresolved is returned when an item name could not be determined for this call.
// The pipeline logs it and carries on; the item will be retried once its cache entry
// expires.
var ErrUnresolved = errors.New("item name unresolved")

// Store is the persistent side of name resolution.
type Store interface {
	LookupItemName(ctx context.Context, itemID int64) (string, bool, error)
	InsertItemName(ctx context.Context, itemID int64, name string) error
}

// Lookup fetches item names from the remote source.
// It returns an error wrapping xivapi.ErrNotFound when the item does not exist.
type Lookup interface {
	ItemName(ctx context.Context, itemID int64) (string, error)
}

// UnknownItemName is the permanent placeholder stored for items the remote source
// does not know.
func UnknownItemName(itemID int64) string {
	return fmt.Sprintf("Unknown Item %d", itemID)
}

// Resolver turns item ids into display names, consulting the cache, then the store,
// then the remote lookup.
type Resolver struct {
	store  Store
	lookup Lookup
	cache  *Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewResolver creates a resolver with its own cache.
func NewResolver(cfg Config, store Store, lookup Lookup, logger *zap.Logger) (*Resolver, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 10000
	}
	cache, err := NewCache(size, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		store:  store,
		lookup: lookup,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Resolve returns the display name of itemID, storing it when it had to be fetched.
//
// Errors wrapping ErrUnresolved are per-call lookup failures. Any other error comes
// from the store and means the database is unusable.
func (r *Resolver) Resolve(ctx context.Context, itemID int64) (string, error) {
	now := r.now()

	if name, fresh := r.cache.Fresh(itemID, now); fresh {
		if name == "" {
			return "", fmt.Errorf("%w: item %d was checked at %s", ErrUnresolved, itemID, now.Format(time.RFC3339))
		}
		return name, nil
	}
	r.cache.Touch(itemID, now)

	name, found, err := r.store.LookupItemName(ctx, itemID)
	if err != nil {
		return "", err
	}
	if found {
		r.cache.Remember(itemID, name, now)
		return name, nil
	}

	name, err = r.lookup.ItemName(ctx, itemID)
	switch {
	case err == nil:
		r.logger.Debug("Resolved item name", zap.Int64("item_id", itemID), zap.String("item_name", name))
	case errors.Is(err, xivapi.ErrNotFound):
		name = UnknownItemName(itemID)
		r.logger.Info("Item not found in item data", zap.Int64("item_id", itemID))
	default:
		return "", fmt.Errorf("%w: %w", ErrUnresolved, err)
	}

	if err := r.store.InsertItemName(ctx, itemID, name); err != nil {
		return "", err
	}
	r.cache.Remember(itemID, name, now)
	return name, nil
}
