package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManager_Send(t *testing.T) {
	t.Parallel()

	t.Run("stores then delivers with generated fields", func(t *testing.T) {
		store := NewMemoryStorage()
		deliverer := new(MockDeliverer)
		deliverer.On("Deliver", mock.Anything, mock.MatchedBy(func(n Notification) bool {
			return n.ID != "" && n.Owner == "alice" && n.Type == TypeInfo && !n.CreatedAt.IsZero()
		})).Return(nil)

		m := NewManager(store, deliverer)
		sent, err := m.Send(context.Background(), Notification{Owner: "alice", Message: "hi"})
		require.NoError(t, err)

		stored, err := store.Get(context.Background(), "alice", sent.ID)
		require.NoError(t, err)
		assert.Equal(t, "hi", stored.Message)
		deliverer.AssertExpectations(t)
	})

	t.Run("delivery failure does not fail the send", func(t *testing.T) {
		store := NewMemoryStorage()
		deliverer := new(MockDeliverer)
		deliverer.On("Deliver", mock.Anything, mock.Anything).Return(errors.New("bus down"))

		m := NewManager(store, deliverer)
		sent, err := m.Send(context.Background(), Notification{Owner: "alice"})
		require.NoError(t, err)

		_, err = store.Get(context.Background(), "alice", sent.ID)
		assert.NoError(t, err)
	})

	t.Run("storage failure skips delivery", func(t *testing.T) {
		deliverer := new(MockDeliverer)
		m := NewManager(NewMemoryStorage(), deliverer)

		_, err := m.Send(context.Background(), Notification{})
		assert.ErrorIs(t, err, ErrMissingOwner)
		deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
	})

	t.Run("nil deliverer is allowed", func(t *testing.T) {
		m := NewManager(NewMemoryStorage(), nil)
		_, err := m.Send(context.Background(), Notification{Owner: "alice"})
		assert.NoError(t, err)
	})
}

func TestManager_SendToUsers(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	q := &recordingQueue{}
	m := NewManager(store, NewQueueDeliverer(q))

	sent, err := m.SendToUsers(context.Background(), []string{"alice", "bob"}, Notification{
		ID:      "ignored",
		Message: "maintenance tonight",
	})
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.NotEqual(t, sent[0].ID, sent[1].ID)
	assert.NotEqual(t, "ignored", sent[0].ID)
	assert.Len(t, q.items, 2)

	for _, owner := range []string{"alice", "bob"} {
		unread, err := store.CountUnread(context.Background(), owner)
		require.NoError(t, err)
		assert.Equal(t, 1, unread)
	}
}

func TestManager_SendBatch_StopsOnStorageError(t *testing.T) {
	t.Parallel()

	deliverer := new(MockDeliverer)
	m := NewManager(NewMemoryStorage(), deliverer)
	stored, err := m.SendBatch(context.Background(), []Notification{
		{Owner: "alice"},
		{Owner: ""},
		{Owner: "bob"},
	})
	assert.ErrorIs(t, err, ErrMissingOwner)
	assert.Len(t, stored, 1)
	deliverer.AssertNotCalled(t, "DeliverBatch", mock.Anything, mock.Anything)
}

func TestManager_Open(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage()
	m := NewManager(store, nil)
	ctx := context.Background()

	sent, err := m.Send(ctx, Notification{Owner: "alice", Message: "read me"})
	require.NoError(t, err)

	got, err := m.Open(ctx, "alice", sent.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)
	assert.Equal(t, "read me", got.Message)

	stored, err := store.Get(ctx, "alice", sent.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)

	_, err = m.Open(ctx, "bob", sent.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestManager_OwnerOperations(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemoryStorage(), nil)
	ctx := context.Background()

	for range 3 {
		_, err := m.Send(ctx, Notification{Owner: "alice", CreatedAt: time.Now().UTC()})
		require.NoError(t, err)
	}
	bobs, err := m.Send(ctx, Notification{Owner: "bob"})
	require.NoError(t, err)

	list, err := m.List(ctx, "alice", ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 3)

	require.NoError(t, m.MarkRead(ctx, "alice", list[0].ID))
	n, err := m.MarkAllRead(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	unread, err := m.CountUnread(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, unread)

	assert.ErrorIs(t, m.Delete(ctx, "alice", bobs.ID), ErrNotificationNotFound)
	require.NoError(t, m.Delete(ctx, "alice", list[0].ID))

	n, err = m.DeleteAll(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := m.Get(ctx, "bob", bobs.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Owner)
}
