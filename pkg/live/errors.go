package live

import "errors"

var (
	ErrForbidden          = errors.New("live: channel access denied")
	ErrBusUnavailable     = errors.New("live: pub/sub bus unavailable")
	ErrSubscriptionClosed = errors.New("live: subscription closed")
)
