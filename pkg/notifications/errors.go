package notifications

import "errors"

var (
	// ErrNotificationNotFound covers both missing records and records owned
	// by someone else; callers cannot tell the two apart.
	ErrNotificationNotFound = errors.New("notifications: not found")

	ErrMissingID    = errors.New("notifications: id is required")
	ErrMissingOwner = errors.New("notifications: owner is required")
	ErrDuplicateID  = errors.New("notifications: id already exists")
	ErrStorage      = errors.New("notifications: storage failure")
)
