package issue_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k1networth/issue-tracker/internal/issue"
	"github.com/k1networth/issue-tracker/internal/shared/db"
)

func newSQLiteStore(t *testing.T) *issue.SQLiteStore {
	t.Helper()

	sqlDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := issue.NewSQLiteStore(sqlDB)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

// Both store implementations must satisfy the same contract; every case
// below runs against the in-memory store and the SQLite store.
func runStoreTests(t *testing.T, name string, newStore func(t *testing.T) issue.Store) {
	seed := func(t *testing.T, s issue.Store, n int) []int64 {
		t.Helper()
		ids := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			id, err := s.Insert(context.Background(), issue.Issue{
				Title:       "title",
				Description: "description",
				Status:      issue.StatusOpen,
				Priority:    issue.PriorityMedium,
				CreatedAt:   "2024-01-02 03:04:05",
			})
			require.NoError(t, err)
			ids = append(ids, id)
		}
		return ids
	}

	t.Run(name+"/insert assigns increasing ids", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s, 3)

		assert.Less(t, ids[0], ids[1])
		assert.Less(t, ids[1], ids[2])
	})

	t.Run(name+"/insert leaves updated_at null", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s, 1)

		got, err := s.GetByID(context.Background(), ids[0])
		require.NoError(t, err)
		assert.Nil(t, got.UpdatedAt)
		assert.Equal(t, "2024-01-02 03:04:05", got.CreatedAt)
		assert.Equal(t, issue.StatusOpen, got.Status)
		assert.Equal(t, issue.PriorityMedium, got.Priority)
	})

	t.Run(name+"/get missing id", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetByID(context.Background(), 12345)
		assert.ErrorIs(t, err, issue.ErrNotFound)
	})

	t.Run(name+"/list pages in insertion order with total", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s, 5)

		page, total, err := s.List(context.Background(), 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, page, 2)
		assert.Equal(t, ids[2], page[0].ID)
		assert.Equal(t, ids[3], page[1].ID)
	})

	t.Run(name+"/list past the end", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, 2)

		page, total, err := s.List(context.Background(), 10, 100)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Empty(t, page)
	})

	t.Run(name+"/update status sets updated_at", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s, 1)

		n, err := s.UpdateStatus(context.Background(), ids[0], issue.StatusResolved, "2024-01-03 00:00:00")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := s.GetByID(context.Background(), ids[0])
		require.NoError(t, err)
		assert.Equal(t, issue.StatusResolved, got.Status)
		require.NotNil(t, got.UpdatedAt)
		assert.Equal(t, "2024-01-03 00:00:00", *got.UpdatedAt)
	})

	t.Run(name+"/update status of missing id affects zero rows", func(t *testing.T) {
		s := newStore(t)

		n, err := s.UpdateStatus(context.Background(), 999, issue.StatusResolved, "2024-01-03 00:00:00")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run(name+"/delete", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s, 1)

		n, err := s.DeleteByID(context.Background(), ids[0])
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = s.DeleteByID(context.Background(), ids[0])
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		_, err = s.GetByID(context.Background(), ids[0])
		assert.ErrorIs(t, err, issue.ErrNotFound)
	})

	t.Run(name+"/ids are not reused after delete", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s, 2)

		_, err := s.DeleteByID(context.Background(), ids[1])
		require.NoError(t, err)

		newIDs := seed(t, s, 1)
		assert.Greater(t, newIDs[0], ids[1])
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, "memory", func(t *testing.T) issue.Store {
		return issue.NewMemoryStore()
	})
}

func TestMemoryStoreListNegativeOffset(t *testing.T) {
	s := issue.NewMemoryStore()
	_, err := s.Insert(context.Background(), issue.Issue{
		Title:       "title",
		Description: "description",
		Status:      issue.StatusOpen,
		Priority:    issue.PriorityLow,
		CreatedAt:   "2024-01-02 03:04:05",
	})
	require.NoError(t, err)

	page, total, err := s.List(context.Background(), 10, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, page)
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, "sqlite", func(t *testing.T) issue.Store {
		return newSQLiteStore(t)
	})
}
