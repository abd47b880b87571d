package repository

import (
	"context"
	"path/filepath"
	"testing"

	"polynomial-residence/internal/residence/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func TestInitSeedsDefaultFeed(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	require.NoError(t, repo.Init(ctx))
	empty, err := repo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	house, rooms, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultHouse(), house)
	assert.Equal(t, catalog.DefaultRooms(), rooms)
}

func TestInitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	require.NoError(t, repo.Init(ctx))
	require.NoError(t, repo.Init(ctx))

	c, err := repo.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Len())
	assert.NoError(t, catalog.Check(c))
}

func TestSeedReplacesFeed(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.Init(ctx))

	rooms := catalog.DefaultRooms()[:2]
	rooms[0].Features = []string{"Only feature"}
	require.NoError(t, repo.Seed(ctx, catalog.DefaultHouse(), rooms))

	_, loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, []string{"Only feature"}, loaded[0].Features)
	assert.Nil(t, loaded[1].CostBreakdown)
}

func TestLoadCostBreakdown(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.Init(ctx))

	c, err := repo.LoadCatalog(ctx)
	require.NoError(t, err)

	living, err := c.Get("living-room")
	require.NoError(t, err)
	cb := living.CostBreakdown
	require.NotNil(t, cb)
	require.NotNil(t, cb.Installation)
	assert.InDelta(t, 250.00, *cb.Installation, 1e-9)
	assert.InDelta(t, 984.70, cb.Total, 1e-9)

	bedroom, err := c.Get("master-bedroom")
	require.NoError(t, err)
	require.NotNil(t, bedroom.CostBreakdown)
	assert.Nil(t, bedroom.CostBreakdown.Molding)
	assert.Nil(t, bedroom.CostBreakdown.Installation)
}

func TestLoadBeforeSeed(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	require.NoError(t, repo.runMigrations(ctx))

	_, _, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrEmptyStore)
}
