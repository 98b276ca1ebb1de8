package live

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/pubsub"
)

// PushBridge relays bus events of the subscription's channel to the client,
// one at a time: the next event is read only after the previous one was sent.
type PushBridge struct {
	bus    pubsub.Subscriber
	logger *slog.Logger
}

func NewPushBridge(bus pubsub.Subscriber, opts ...Option) *PushBridge {
	o := newOptions(opts)
	return &PushBridge{bus: bus, logger: o.logger}
}

// Stream blocks until ctx is cancelled, sub is closed, the client stops
// accepting events, or the bus fails. Only a bus failure is reported, wrapped
// in ErrBusUnavailable. The bus subscription is released on every exit path.
func (b *PushBridge) Stream(ctx context.Context, sub *Subscription, send SendFunc) error {
	if !sub.Live() {
		return ErrSubscriptionClosed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-sub.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	attrs := subscriptionAttrs(sub)

	busSub, err := b.bus.Subscribe(ctx, sub.Channel)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		b.logger.LogAttrs(ctx, slog.LevelError, "live subscription failed",
			append(attrs, logger.Error(err))...)
		return errors.Join(ErrBusUnavailable, err)
	}
	defer busSub.Close()

	b.logger.LogAttrs(ctx, slog.LevelDebug, "live subscription opened", attrs...)

	for {
		ev, err := busSub.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, pubsub.ErrClosed) {
				b.logger.LogAttrs(context.WithoutCancel(ctx), slog.LevelDebug, "live subscription ended", attrs...)
				return nil
			}
			b.logger.LogAttrs(ctx, slog.LevelError, "live subscription lost the bus",
				append(attrs, logger.Error(err))...)
			return errors.Join(ErrBusUnavailable, err)
		}

		if !sub.Live() {
			return nil
		}

		if err := send(ev); err != nil {
			b.logger.LogAttrs(ctx, slog.LevelDebug, "client disconnected",
				append(attrs, logger.EventType(ev.Type), logger.Error(err))...)
			return nil
		}
	}
}
