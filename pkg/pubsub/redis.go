package pubsub

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/monitio/pkg/logger"
)

// RedisBus publishes and subscribes through Redis channels. The client is
// shared by all subscriptions and is not closed by the bus.
type RedisBus struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// RedisOption configures a RedisBus.
type RedisOption func(*RedisBus)

// WithLogger sets the logger used to report undecodable payloads.
func WithLogger(l *slog.Logger) RedisOption {
	return func(b *RedisBus) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewRedisBus creates a bus on top of client.
func NewRedisBus(client redis.UniversalClient, opts ...RedisOption) *RedisBus {
	b := &RedisBus{
		client: client,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish sends ev to every current subscriber of channel.
func (b *RedisBus) Publish(ctx context.Context, channel string, ev Event) error {
	if channel == "" {
		return ErrEmptyChannel
	}

	payload, err := Encode(ev)
	if err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Subscribe opens a Redis subscription on channel and waits for the server to
// confirm it, so events published after Subscribe returns are not missed.
func (b *RedisBus) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}

	ps := b.client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, errors.Join(ErrSubscribeFailed, err)
	}

	return &redisSubscription{
		ps:      ps,
		channel: channel,
		logger:  b.logger,
	}, nil
}

type redisSubscription struct {
	ps      *redis.PubSub
	channel string
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

func (s *redisSubscription) Receive(ctx context.Context) (Event, error) {
	if s.isClosed() {
		return Event{}, ErrClosed
	}

	// the redis reader does not watch ctx; closing the connection unblocks it
	stop := context.AfterFunc(ctx, func() { _ = s.Close() })
	defer stop()

	for {
		msg, err := s.ps.ReceiveMessage(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Event{}, ctxErr
			}
			if s.isClosed() {
				return Event{}, ErrClosed
			}
			return Event{}, errors.Join(ErrReceiveFailed, err)
		}

		ev, err := Decode([]byte(msg.Payload))
		if err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "skipping undecodable event",
				logger.Component("pubsub"),
				logger.Channel(s.channel),
				logger.Error(err),
			)
			continue
		}
		return ev, nil
	}
}

func (s *redisSubscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.ps.Close()
}

func (s *redisSubscription) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
