package pubsub

import "errors"

var (
	ErrEmptyChannel      = errors.New("pubsub: channel name is empty")
	ErrClosed            = errors.New("pubsub: subscription closed")
	ErrPublishFailed     = errors.New("pubsub: publish failed")
	ErrSubscribeFailed   = errors.New("pubsub: subscribe failed")
	ErrReceiveFailed     = errors.New("pubsub: receive failed")
	ErrMalformedEnvelope = errors.New("pubsub: malformed event envelope")
)
