package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStorageContract checks the behaviour every Storage must share.
func runStorageContract(t *testing.T, newStorage func(t *testing.T) Storage) {
	t.Helper()

	seed := func(t *testing.T, s Storage, owner string, ids ...string) {
		t.Helper()
		base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
		for i, id := range ids {
			require.NoError(t, s.Create(context.Background(), Notification{
				ID:        id,
				Owner:     owner,
				Type:      TypeInfo,
				Message:   "message " + id,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}))
		}
	}

	t.Run("create validates required fields", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()

		assert.ErrorIs(t, s.Create(ctx, Notification{Owner: "alice"}), ErrMissingID)
		assert.ErrorIs(t, s.Create(ctx, Notification{ID: "n1"}), ErrMissingOwner)
	})

	t.Run("create rejects duplicate ids", func(t *testing.T) {
		s := newStorage(t)
		seed(t, s, "alice", "n1")

		err := s.Create(context.Background(), Notification{ID: "n1", Owner: "bob"})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("get is scoped to the owner", func(t *testing.T) {
		s := newStorage(t)
		seed(t, s, "alice", "n1")
		ctx := context.Background()

		got, err := s.Get(ctx, "alice", "n1")
		require.NoError(t, err)
		assert.Equal(t, "n1", got.ID)
		assert.Equal(t, "alice", got.Owner)
		assert.Equal(t, "message n1", got.Message)
		assert.False(t, got.Read)

		_, err = s.Get(ctx, "bob", "n1")
		assert.ErrorIs(t, err, ErrNotificationNotFound)

		_, err = s.Get(ctx, "alice", "missing")
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("mark read", func(t *testing.T) {
		s := newStorage(t)
		seed(t, s, "alice", "n1")
		ctx := context.Background()

		assert.ErrorIs(t, s.MarkRead(ctx, "bob", "n1"), ErrNotificationNotFound)
		assert.ErrorIs(t, s.MarkRead(ctx, "alice", "missing"), ErrNotificationNotFound)

		require.NoError(t, s.MarkRead(ctx, "alice", "n1"))
		got, err := s.Get(ctx, "alice", "n1")
		require.NoError(t, err)
		assert.True(t, got.Read)
		require.NotNil(t, got.ReadAt)

		// marking again is not an error
		require.NoError(t, s.MarkRead(ctx, "alice", "n1"))
	})

	t.Run("mark all read counts only newly read records", func(t *testing.T) {
		s := newStorage(t)
		seed(t, s, "alice", "n1", "n2", "n3")
		seed(t, s, "bob", "n4")
		ctx := context.Background()

		require.NoError(t, s.MarkRead(ctx, "alice", "n2"))

		n, err := s.MarkAllRead(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = s.MarkAllRead(ctx, "alice")
		require.NoError(t, err)
		assert.Zero(t, n)

		unread, err := s.CountUnread(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, 1, unread, "other owners are untouched")
	})

	t.Run("delete", func(t *testing.T) {
		s := newStorage(t)
		seed(t, s, "alice", "n1")
		ctx := context.Background()

		assert.ErrorIs(t, s.Delete(ctx, "bob", "n1"), ErrNotificationNotFound)
		require.NoError(t, s.Delete(ctx, "alice", "n1"))
		assert.ErrorIs(t, s.Delete(ctx, "alice", "n1"), ErrNotificationNotFound)

		_, err := s.Get(ctx, "alice", "n1")
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("delete all only touches the owner", func(t *testing.T) {
		s := newStorage(t)
		seed(t, s, "alice", "n1", "n2")
		seed(t, s, "bob", "n3")
		ctx := context.Background()

		n, err := s.DeleteAll(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = s.DeleteAll(ctx, "alice")
		require.NoError(t, err)
		assert.Zero(t, n)

		got, err := s.Get(ctx, "bob", "n3")
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Owner)
	})

	t.Run("list is newest first and filtered", func(t *testing.T) {
		s := newStorage(t)
		seed(t, s, "alice", "n1", "n2", "n3")
		seed(t, s, "bob", "n4")
		ctx := context.Background()

		require.NoError(t, s.MarkRead(ctx, "alice", "n3"))

		all, err := s.List(ctx, "alice", ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"n3", "n2", "n1"}, ids(all))

		unread, err := s.List(ctx, "alice", ListOptions{OnlyUnread: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"n2", "n1"}, ids(unread))

		page, err := s.List(ctx, "alice", ListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"n2"}, ids(page))

		none, err := s.List(ctx, "carol", ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("expired records are hidden from list and count", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		past := time.Now().UTC().Add(-time.Minute)

		require.NoError(t, s.Create(ctx, Notification{ID: "old", Owner: "alice", ExpiresAt: &past}))
		seed(t, s, "alice", "fresh")

		list, err := s.List(ctx, "alice", ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"fresh"}, ids(list))

		unread, err := s.CountUnread(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, unread)
	})
}

func ids(notifs []Notification) []string {
	out := make([]string, len(notifs))
	for i, n := range notifs {
		out[i] = n.ID
	}
	return out
}
