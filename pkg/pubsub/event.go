package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// DefaultEventType is used for events published without a type.
const DefaultEventType = "message"

// Event is one unit pushed to a channel.
type Event struct {
	Type string
	Data string
}

// NewEvent returns an event of the default type.
func NewEvent(data string) Event {
	return Event{Type: DefaultEventType, Data: data}
}

// Publisher sends events to a named channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, ev Event) error
}

// Subscriber opens subscriptions on a named channel.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Bus is both ends of the pub/sub transport.
type Bus interface {
	Publisher
	Subscriber
}

// Subscription delivers the events of one channel to one consumer.
type Subscription interface {
	// Receive blocks until the next event arrives. Cancelling ctx interrupts
	// the wait and closes the subscription; the context error is returned.
	// After Close it returns ErrClosed.
	Receive(ctx context.Context) (Event, error)

	// Close releases the bus-side subscription. It is idempotent.
	Close() error
}

// ValidType reports whether t can be written as an SSE event name: line
// breaks would start a new field on the stream.
func ValidType(t string) bool {
	return !strings.ContainsAny(t, "\r\n")
}

// Encode renders ev as the JSON array [type, data].
func Encode(ev Event) ([]byte, error) {
	if ev.Type == "" {
		ev.Type = DefaultEventType
	}
	if !ValidType(ev.Type) {
		return nil, ErrMalformedEnvelope
	}
	return json.Marshal([2]string{ev.Type, ev.Data})
}

// Decode parses a payload produced by Encode.
func Decode(payload []byte) (Event, error) {
	var parts []string
	if err := json.Unmarshal(payload, &parts); err != nil {
		return Event{}, errors.Join(ErrMalformedEnvelope, err)
	}
	if len(parts) != 2 {
		return Event{}, ErrMalformedEnvelope
	}

	ev := Event{Type: parts[0], Data: parts[1]}
	if !ValidType(ev.Type) {
		return Event{}, ErrMalformedEnvelope
	}
	if ev.Type == "" {
		ev.Type = DefaultEventType
	}
	return ev, nil
}
