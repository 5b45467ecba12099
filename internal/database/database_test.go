package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCatalogSeededOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	catalog, err := db.GetAchievementCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 8)
	assert.Equal(t, "First Task Done", catalog[0].Title)
	for _, meta := range catalog {
		assert.Positive(t, meta.Goal, "achievement %d", meta.ID)
	}

	// Re-running the seed against a populated catalog is a no-op.
	require.NoError(t, db.seedAchievementCatalog())
	catalog, err = db.GetAchievementCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 8)
}

func TestReopenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.Nop()
	path := filepath.Join(dir, "test.db")

	db, err := NewDB(path, &logger)
	require.NoError(t, err)
	require.NoError(t, db.CreateUser(context.Background(), "alice", "pw"))
	require.NoError(t, db.Close())

	// Schema creation and catalog seeding are idempotent on restart.
	db, err = NewDB(path, &logger)
	require.NoError(t, err)
	defer db.Close()

	profile, err := db.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	catalog, err := db.GetAchievementCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog, 8)
}
