package worlds

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samsimpson1/stonks/core/universalis"

	"go.uber.org/zap"
)

// ErrNoWorlds is returned when the configured region has no worlds.
var ErrNoWorlds = errors.New("no worlds found in region")

// Directory lists data centers and worlds.
type Directory interface {
	DataCenters(ctx context.Context) ([]universalis.DataCenter, error)
	Worlds(ctx context.Context) ([]universalis.World, error)
}

// Registry persists worlds.
type Registry interface {
	RegisterWorld(ctx context.Context, worldID int64, worldName string) error
}

// Catalog maps world ids to world names. A name is empty when the directory did not
// know the world.
type Catalog map[int64]string

// IDs returns the world ids in ascending order.
func (c Catalog) IDs() []int64 {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Bootstrapper builds the world catalog for one region.
type Bootstrapper struct {
	region    string
	directory Directory
	registry  Registry
	logger    *zap.Logger
}

// NewBootstrapper creates a new bootstrapper.
func NewBootstrapper(cfg Config, directory Directory, registry Registry, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{
		region:    cfg.Region,
		directory: directory,
		registry:  registry,
		logger:    logger,
	}
}

// Run fetches the region's worlds, registers each of them and returns the catalog.
// It fails with ErrNoWorlds when the region is unknown or empty.
func (b *Bootstrapper) Run(ctx context.Context) (Catalog, error) {
	dcs, err := b.directory.DataCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list data centers: %w", err)
	}

	var ids []int64
	for _, dc := range dcs {
		if dc.Name == b.region {
			ids = append(ids, dc.Worlds...)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoWorlds, b.region)
	}
	b.logger.Info("Found worlds in region", zap.String("region", b.region), zap.Int("worlds", len(ids)))

	directory, err := b.directory.Worlds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	names := make(map[int64]string, len(directory))
	for _, w := range directory {
		names[w.ID] = w.Name
	}

	catalog := make(Catalog, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			b.logger.Warn("World missing from world directory", zap.Int64("world_id", id))
		}
		catalog[id] = name

		if err := b.registry.RegisterWorld(ctx, id, name); err != nil {
			return nil, err
		}
	}

	return catalog, nil
}
