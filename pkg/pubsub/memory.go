package pubsub

import (
	"context"
	"errors"

	"github.com/dmitrymomot/monitio/pkg/broadcast"
)

// MemoryBus is an in-process bus. Each subscription buffers up to the
// configured number of events; a subscriber that falls further behind is
// dropped and its Receive returns ErrClosed.
type MemoryBus struct {
	topics *broadcast.Topics[Event]
}

// NewMemoryBus creates an in-process bus.
func NewMemoryBus(bufferSize int) *MemoryBus {
	return &MemoryBus{topics: broadcast.NewTopics[Event](bufferSize)}
}

func (b *MemoryBus) Publish(ctx context.Context, channel string, ev Event) error {
	if channel == "" {
		return ErrEmptyChannel
	}
	if ev.Type == "" {
		ev.Type = DefaultEventType
	}
	if !ValidType(ev.Type) {
		return errors.Join(ErrPublishFailed, ErrMalformedEnvelope)
	}

	err := b.topics.Publish(ctx, channel, broadcast.Message[Event]{Data: ev})
	if errors.Is(err, broadcast.ErrClosed) {
		return errors.Join(ErrPublishFailed, ErrClosed)
	}
	return err
}

// Subscribe registers on channel. The subscription lives until it is closed or
// the bus is closed; ctx only bounds the call itself.
func (b *MemoryBus) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrSubscribeFailed, err)
	}

	return &memorySubscription{
		sub: b.topics.Subscribe(context.WithoutCancel(ctx), channel),
	}, nil
}

// Channels lists the channels that currently have subscribers.
func (b *MemoryBus) Channels() []string {
	return b.topics.Names()
}

// Close ends every subscription. Publishing afterwards fails.
func (b *MemoryBus) Close() error {
	return b.topics.Close()
}

type memorySubscription struct {
	sub broadcast.Subscriber[Event]
}

func (s *memorySubscription) Receive(ctx context.Context) (Event, error) {
	select {
	case msg, ok := <-s.sub.Receive(ctx):
		if !ok {
			return Event{}, ErrClosed
		}
		return msg.Data, nil
	case <-ctx.Done():
		_ = s.Close()
		return Event{}, ctx.Err()
	}
}

func (s *memorySubscription) Close() error {
	return s.sub.Close()
}
