package notifications

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/pubsub"
)

// BusDeliverer publishes each notification on its owner's channel. The event
// data is the notification JSON.
type BusDeliverer struct {
	bus       pubsub.Publisher
	eventType string
	logger    *slog.Logger
}

// BusDelivererOption configures a BusDeliverer.
type BusDelivererOption func(*BusDeliverer)

func WithBusLogger(l *slog.Logger) BusDelivererOption {
	return func(d *BusDeliverer) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithEventType sets the event type clients receive. Defaults to "message".
func WithEventType(eventType string) BusDelivererOption {
	return func(d *BusDeliverer) {
		if eventType != "" {
			d.eventType = eventType
		}
	}
}

func NewBusDeliverer(bus pubsub.Publisher, opts ...BusDelivererOption) *BusDeliverer {
	d := &BusDeliverer{
		bus:       bus,
		eventType: pubsub.DefaultEventType,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *BusDeliverer) Deliver(ctx context.Context, notif Notification) error {
	payload, err := notif.Payload()
	if err != nil {
		return err
	}
	if err := d.bus.Publish(ctx, notif.Owner, pubsub.Event{Type: d.eventType, Data: payload}); err != nil {
		return err
	}

	d.logger.LogAttrs(ctx, slog.LevelDebug, "notification published",
		logger.NotificationID(notif.ID),
		logger.Channel(notif.Owner),
		logger.EventType(d.eventType),
	)
	return nil
}

// DeliverBatch publishes every notification and reports all failures together.
func (d *BusDeliverer) DeliverBatch(ctx context.Context, notifs []Notification) error {
	var errs []error
	for _, n := range notifs {
		if err := d.Deliver(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
