package live

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/pubsub"
)

// TestFeed emits the messages waiting in a PendingQueue as "message" events
// and returns without waiting for more. It never touches the bus.
type TestFeed struct {
	queue  *PendingQueue
	logger *slog.Logger
}

func NewTestFeed(queue *PendingQueue, opts ...Option) *TestFeed {
	o := newOptions(opts)
	return &TestFeed{queue: queue, logger: o.logger}
}

// Stream drains the queue once. Messages drained while the client is already
// gone are dropped rather than re-queued.
func (f *TestFeed) Stream(ctx context.Context, sub *Subscription, send SendFunc) error {
	if !sub.Live() {
		return ErrSubscriptionClosed
	}

	msgs := f.queue.DrainAll()
	f.logger.LogAttrs(ctx, slog.LevelDebug, "test feed drained queue",
		append(subscriptionAttrs(sub), logger.Count(len(msgs)))...)

	for _, msg := range msgs {
		if ctx.Err() != nil || !sub.Live() {
			return nil
		}
		if err := send(pubsub.NewEvent(msg)); err != nil {
			return nil
		}
	}
	return nil
}
