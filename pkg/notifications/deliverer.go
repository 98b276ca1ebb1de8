package notifications

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/monitio/pkg/logger"
)

// Deliverer pushes stored notifications to their owners in real time.
// Delivery is best effort: a failed push is never retried.
type Deliverer interface {
	Deliver(ctx context.Context, notif Notification) error
	DeliverBatch(ctx context.Context, notifs []Notification) error
}

// MultiDeliverer fans a notification out to several deliverers. A failing
// deliverer is logged and skipped.
type MultiDeliverer struct {
	deliverers []Deliverer
	logger     *slog.Logger
}

// MultiDelivererOption configures a MultiDeliverer.
type MultiDelivererOption func(*MultiDeliverer)

func WithMultiDelivererLogger(l *slog.Logger) MultiDelivererOption {
	return func(m *MultiDeliverer) {
		if l != nil {
			m.logger = l
		}
	}
}

func NewMultiDeliverer(deliverers []Deliverer, opts ...MultiDelivererOption) *MultiDeliverer {
	m := &MultiDeliverer{
		deliverers: deliverers,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MultiDeliverer) Deliver(ctx context.Context, notif Notification) error {
	for i, d := range m.deliverers {
		if err := d.Deliver(ctx, notif); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "failed to deliver notification",
				logger.NotificationID(notif.ID),
				logger.UserID(notif.Owner),
				slog.Int("deliverer_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

func (m *MultiDeliverer) DeliverBatch(ctx context.Context, notifs []Notification) error {
	for i, d := range m.deliverers {
		if err := d.DeliverBatch(ctx, notifs); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "failed to deliver notification batch",
				logger.Count(len(notifs)),
				slog.Int("deliverer_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

// NoOpDeliverer discards everything. Used when live push is disabled.
type NoOpDeliverer struct{}

func (NoOpDeliverer) Deliver(context.Context, Notification) error        { return nil }
func (NoOpDeliverer) DeliverBatch(context.Context, []Notification) error { return nil }
