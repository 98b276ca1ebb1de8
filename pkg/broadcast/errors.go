package broadcast

import "errors"

// ErrClosed is returned when publishing through a closed broadcaster or topic set.
var ErrClosed = errors.New("broadcast: closed")
