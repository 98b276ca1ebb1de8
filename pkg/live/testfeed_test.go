package live_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/monitio/pkg/live"
	"github.com/dmitrymomot/monitio/pkg/pubsub"
)

func collectEvents(events *[]pubsub.Event) live.SendFunc {
	return func(ev pubsub.Event) error {
		*events = append(*events, ev)
		return nil
	}
}

func anonymousSubscription(t *testing.T) *live.Subscription {
	t.Helper()
	sub, err := live.NewAuthorizer().Subscribe(live.Anonymous(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })
	return sub
}

func TestTestFeed_Stream(t *testing.T) {
	t.Parallel()

	t.Run("emits queued messages once in order", func(t *testing.T) {
		q := live.NewPendingQueue()
		q.Enqueue("first", "second")
		feed := live.NewTestFeed(q)

		var events []pubsub.Event
		require.NoError(t, feed.Stream(context.Background(), anonymousSubscription(t), collectEvents(&events)))

		assert.Equal(t, []pubsub.Event{
			{Type: "message", Data: "first"},
			{Type: "message", Data: "second"},
		}, events)
		assert.Zero(t, q.Len())

		events = nil
		require.NoError(t, feed.Stream(context.Background(), anonymousSubscription(t), collectEvents(&events)))
		assert.Empty(t, events)
	})

	t.Run("empty queue returns immediately", func(t *testing.T) {
		feed := live.NewTestFeed(live.NewPendingQueue())

		var events []pubsub.Event
		require.NoError(t, feed.Stream(context.Background(), anonymousSubscription(t), collectEvents(&events)))
		assert.Empty(t, events)
	})

	t.Run("client disconnect stops emission silently", func(t *testing.T) {
		q := live.NewPendingQueue()
		q.Enqueue("a", "b", "c")
		feed := live.NewTestFeed(q)

		calls := 0
		err := feed.Stream(context.Background(), anonymousSubscription(t), func(pubsub.Event) error {
			calls++
			return errors.New("broken pipe")
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Zero(t, q.Len(), "drained messages are not re-queued")
	})

	t.Run("closed subscription is rejected", func(t *testing.T) {
		q := live.NewPendingQueue()
		q.Enqueue("kept")
		sub := anonymousSubscription(t)
		require.NoError(t, sub.Close())

		err := live.NewTestFeed(q).Stream(context.Background(), sub, collectEvents(new([]pubsub.Event)))
		assert.ErrorIs(t, err, live.ErrSubscriptionClosed)
		assert.Equal(t, 1, q.Len())
	})

	t.Run("concurrent subscribers split the queue", func(t *testing.T) {
		q := live.NewPendingQueue()
		for _, msg := range []string{"1", "2", "3", "4", "5"} {
			q.Enqueue(msg)
		}
		feed := live.NewTestFeed(q)

		var (
			mu  sync.Mutex
			got []string
			wg  sync.WaitGroup
		)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = feed.Stream(context.Background(), anonymousSubscription(t), func(ev pubsub.Event) error {
					mu.Lock()
					got = append(got, ev.Data)
					mu.Unlock()
					return nil
				})
			}()
		}
		wg.Wait()

		assert.ElementsMatch(t, []string{"1", "2", "3", "4", "5"}, got)
	})
}
