package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samsimpson1/stonks/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdmissionWindow is how far in the past a sale may be and still be stored.
const AdmissionWindow = 7 * 24 * time.Hour

// Admission is the outcome of offering a sale to the store.
type Admission int

const (
	// Admitted means a new row was written.
	Admitted Admission = iota
	// Duplicate means a row with the same (timestamp, item_id, price) already existed.
	Duplicate
	// Stale means the sale is older than AdmissionWindow and was not written.
	Stale
)

func (a Admission) String() string {
	switch a {
	case Admitted:
		return "admitted"
	case Duplicate:
		return "duplicate"
	case Stale:
		return "stale"
	default:
		return fmt.Sprintf("admission(%d)", int(a))
	}
}

// Store persists worlds, item names and sales.
// Every write is a single insert-or-ignore statement committed before the method
// returns; nothing is batched across calls. Errors returned by the store mean the
// database could not be written and are not recoverable by retrying the event.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewStore creates a store over an open database handle.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Migrate creates the worlds, items and sales tables and the sales indexes.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&World{}, &Item{}, &Sale{}); err != nil {
		return fmt.Errorf("failed to migrate record tables: %w", err)
	}
	return nil
}

// RegisterWorld stores a world unless its id is already known.
// An empty name is stored as NULL.
func (s *Store) RegisterWorld(ctx context.Context, worldID int64, worldName string) error {
	world := World{WorldID: worldID}
	if worldName != "" {
		world.WorldName = &worldName
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&world)
	if res.Error != nil {
		return fmt.Errorf("failed to register world %d: %w", worldID, res.Error)
	}
	if res.RowsAffected == 0 {
		s.logger.Debug("World already registered", zap.Int64("world_id", worldID))
	}
	return nil
}

// LookupItemName returns the stored name of an item and whether it was found.
func (s *Store) LookupItemName(ctx context.Context, itemID int64) (string, bool, error) {
	var item Item
	err := s.db.WithContext(ctx).Where("item_id = ?", itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up item %d: %w", itemID, err)
	}
	return item.ItemName, true, nil
}

// InsertItemName stores an item name unless the item already has one.
func (s *Store) InsertItemName(ctx context.Context, itemID int64, name string) error {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&Item{ItemID: itemID, ItemName: name})
	if res.Error != nil {
		return fmt.Errorf("failed to insert name for item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		s.logger.Debug("Item name already stored", zap.Int64("item_id", itemID))
	}
	return nil
}

// Admit applies the admission window and the dedup key to a sale and stores it
// when both pass.
func (s *Store) Admit(ctx context.Context, sale Sale) (Admission, error) {
	cutoff := s.now().Add(-AdmissionWindow)
	if time.Unix(sale.Timestamp, 0).Before(cutoff) {
		s.logger.Debug("Sale timestamp too old",
			zap.Int64("item_id", sale.ItemID),
			zap.Int64("timestamp", sale.Timestamp),
		)
		return Stale, nil
	}

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&sale)
	if res.Error != nil {
		return Stale, fmt.Errorf("failed to insert sale of item %d at %d: %w", sale.ItemID, sale.Timestamp, res.Error)
	}
	if res.RowsAffected == 0 {
		return Duplicate, nil
	}
	return Admitted, nil
}

// RecordSale reports whether the sale was written as a new row.
// Stale and duplicate sales both return false without error.
func (s *Store) RecordSale(ctx context.Context, sale Sale) (bool, error) {
	admission, err := s.Admit(ctx, sale)
	if err != nil {
		return false, err
	}
	return admission == Admitted, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.logger.Info("Closing database connection")
	return database.Close(s.db)
}
