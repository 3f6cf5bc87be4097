package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_AppendAndRecent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Append(Event{Kind: "signup", Email: "a@x.com", UserID: "u1"}))
	require.NoError(t, store.Append(Event{Kind: "signin", Email: "a@x.com", UserID: "u1"}))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	events, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "signup", events[0].Kind)
	assert.Equal(t, "signin", events[1].Kind)
	for _, event := range events {
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
	}
}

func TestStore_RecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(Event{Kind: "signin_failed"}))
	}

	events, err := store.Recent(3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestStore_CleanupDropsOldEvents(t *testing.T) {
	store := openTestStore(t)

	old := Event{Kind: "signup", Timestamp: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, store.Append(old))
	require.NoError(t, store.Append(Event{Kind: "signin"}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	events, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "signin", events[0].Kind)
}

func TestStore_ClosedStoreErrors(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	err := store.Append(Event{Kind: "signup"})
	assert.Error(t, err)
}
