package notes

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

// runStoreSuite exercises the Store contract against any implementation.
func runStoreSuite(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	seed := []Note{
		{UserID: "u1", Topic: "Python decorators", Score: floatPtr(0.65), Status: StatusCompleted, CreatedAt: now.Add(-1 * time.Hour)},
		{UserID: "u1", Topic: "Python list comprehensions", Score: floatPtr(0.85), Status: StatusCompleted, CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: "u1", Topic: "English articles", Score: floatPtr(0.45), Status: StatusCompleted, CreatedAt: now.Add(-3 * time.Hour)},
		{UserID: "u2", Topic: "English articles", Score: floatPtr(0.9), Status: StatusCompleted, CreatedAt: now.Add(-4 * time.Hour)},
	}
	for _, note := range seed {
		require.NoError(t, store.Append(ctx, note))
	}

	t.Run("query by user", func(t *testing.T) {
		got, err := store.Query(ctx, "u1", "", 0)
		require.NoError(t, err)
		require.Len(t, got, 3)

		// Newest first
		assert.Equal(t, "Python decorators", got[0].Topic)
		assert.Equal(t, "English articles", got[2].Topic)

		// Append fills identifiers
		for _, note := range got {
			assert.NotEmpty(t, note.ID)
		}
	})

	t.Run("topic filter is case-insensitive substring", func(t *testing.T) {
		got, err := store.Query(ctx, "u1", "python", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := store.Query(ctx, "u1", "", 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("unknown user returns empty, not error", func(t *testing.T) {
		got, err := store.Query(ctx, "nobody", "", 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestSQLStore(t *testing.T) {
	store, err := NewSQLStore(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	defer store.Close()

	runStoreSuite(t, store)
}

func TestSQLStore_ScoreAndTagsRoundTrip(t *testing.T) {
	store, err := NewSQLStore(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, Note{
		UserID:  "u1",
		Topic:   "goroutines",
		Content: "channels still confusing",
		Score:   floatPtr(0.5),
		Tags:    []string{"go", "concurrency"},
	}))
	require.NoError(t, store.Append(ctx, Note{
		UserID: "u1",
		Topic:  "interfaces",
		// Unscored session
	}))

	got, err := store.Query(ctx, "u1", "goroutines", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Score)
	assert.InDelta(t, 0.5, *got[0].Score, 0.001)
	assert.Equal(t, []string{"go", "concurrency"}, got[0].Tags)

	got, err = store.Query(ctx, "u1", "interfaces", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Score)
	assert.Equal(t, StatusCompleted, got[0].Status)
}
