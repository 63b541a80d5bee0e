package favorites

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "favorites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_AddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := &Record{
		UserID:   1,
		WineName: "Rioja",
		WineLink: "https://example.com/rioja",
		ImageURL: "https://example.com/rioja.jpg",
		Rating:   4.2,
		Price:    18.5,
		Region:   "Rioja",
		Country:  "Spain",
	}
	require.NoError(t, store.Add(ctx, rec))
	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	recs, err := store.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Rioja", recs[0].WineName)
	assert.Equal(t, 4.2, recs[0].Rating)
	assert.Equal(t, "Spain", recs[0].Country)
}

func TestSQLiteStore_DuplicateIsDistinct(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, &Record{UserID: 1, WineName: "Barolo"}))

	err := store.Add(ctx, &Record{UserID: 1, WineName: "Barolo"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same wine for a different user is fine.
	require.NoError(t, store.Add(ctx, &Record{UserID: 2, WineName: "Barolo"}))
	// Different wine for the same user is fine.
	require.NoError(t, store.Add(ctx, &Record{UserID: 1, WineName: "Chianti"}))

	recs, err := store.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSQLiteStore_Exists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Exists(ctx, 1, "Rioja")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Add(ctx, &Record{UserID: 1, WineName: "Rioja"}))

	ok, err = store.Exists(ctx, 1, "Rioja")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, 2, "Rioja")
	require.NoError(t, err)
	assert.False(t, ok, "existence is scoped per user")
}

func TestSQLiteStore_ListOrderIsInsertion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		require.NoError(t, store.Add(ctx, &Record{UserID: 1, WineName: name}))
	}

	recs, err := store.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "First", recs[0].WineName)
	assert.Equal(t, "Third", recs[2].WineName)
}
