package worlds_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/samsimpson1/stonks/core/database"
	"github.com/samsimpson1/stonks/core/universalis"
	"github.com/samsimpson1/stonks/feature/records"
	"github.com/samsimpson1/stonks/feature/worlds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDirectory struct {
	dcs    []universalis.DataCenter
	worlds []universalis.World
	err    error
}

func (d stubDirectory) DataCenters(context.Context) ([]universalis.DataCenter, error) {
	return d.dcs, d.err
}

func (d stubDirectory) Worlds(context.Context) ([]universalis.World, error) {
	return d.worlds, d.err
}

var directory = stubDirectory{
	dcs: []universalis.DataCenter{
		{Name: "Light", Region: "Europe", Worlds: []int64{402, 33, 36}},
		{Name: "Chaos", Region: "Europe", Worlds: []int64{39}},
	},
	worlds: []universalis.World{
		{ID: 402, Name: "Alpha"},
		{ID: 33, Name: "Twintania"},
		{ID: 39, Name: "Omega"},
	},
}

func newStore(t *testing.T) *records.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Path: filepath.Join(t.TempDir(), "worlds.db")}, zap.NewNop())
	require.NoError(t, err)

	store := records.NewStore(db, zap.NewNop())
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBootstrap(t *testing.T) {
	store := newStore(t)
	b := worlds.NewBootstrapper(worlds.Config{Region: "Light"}, directory, store, zap.NewNop())

	catalog, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, worlds.Catalog{402: "Alpha", 33: "Twintania", 36: ""}, catalog)
	assert.Equal(t, []int64{33, 36, 402}, catalog.IDs())

	// Bootstrapping twice is harmless.
	_, err = b.Run(context.Background())
	assert.NoError(t, err)
}

func TestBootstrapRegistersWorlds(t *testing.T) {
	db, err := database.Connect(database.Config{Path: filepath.Join(t.TempDir(), "worlds.db")}, zap.NewNop())
	require.NoError(t, err)
	store := records.NewStore(db, zap.NewNop())
	require.NoError(t, store.Migrate(context.Background()))
	defer store.Close()

	_, err = worlds.NewBootstrapper(worlds.Config{Region: "Light"}, directory, store, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)

	var rows []records.World
	require.NoError(t, db.Order("world_id").Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(33), rows[0].WorldID)
	assert.Equal(t, "Twintania", *rows[0].WorldName)
	assert.Nil(t, rows[1].WorldName)
	assert.Equal(t, "Alpha", *rows[2].WorldName)
}

func TestBootstrapNoWorlds(t *testing.T) {
	store := newStore(t)

	_, err := worlds.NewBootstrapper(worlds.Config{Region: "Atlantis"}, directory, store, zap.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, worlds.ErrNoWorlds)

	empty := stubDirectory{dcs: []universalis.DataCenter{{Name: "Light"}}}
	_, err = worlds.NewBootstrapper(worlds.Config{Region: "Light"}, empty, store, zap.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, worlds.ErrNoWorlds)
}

func TestBootstrapDirectoryFailure(t *testing.T) {
	upstream := errors.New("connection reset")
	_, err := worlds.NewBootstrapper(worlds.Config{Region: "Light"}, stubDirectory{err: upstream}, newStore(t), zap.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, upstream)
	assert.NotErrorIs(t, err, worlds.ErrNoWorlds)
}
