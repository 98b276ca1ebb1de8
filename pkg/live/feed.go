package live

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/pubsub"
)

// SendFunc writes one event to the client. An error means the client is gone.
type SendFunc func(ev pubsub.Event) error

// Feed produces the events of a subscription. Stream returns once the feed
// is exhausted, the subscription or ctx ends, or the source fails.
// A client disconnect is not an error.
type Feed interface {
	Stream(ctx context.Context, sub *Subscription, send SendFunc) error
}

// FeedFunc adapts a function to the Feed interface.
type FeedFunc func(ctx context.Context, sub *Subscription, send SendFunc) error

func (f FeedFunc) Stream(ctx context.Context, sub *Subscription, send SendFunc) error {
	return f(ctx, sub, send)
}

// Option configures a Feed.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by a feed.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func subscriptionAttrs(sub *Subscription) []slog.Attr {
	return []slog.Attr{
		logger.Component("live"),
		logger.SubscriptionID(sub.ID),
		logger.Channel(sub.Channel),
		logger.UserID(sub.Identity.Username()),
	}
}
