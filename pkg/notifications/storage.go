package notifications

import (
	"context"
	"time"
)

// Storage persists notifications. Every call is scoped to an owner: a record
// belonging to another owner behaves exactly like a missing one.
type Storage interface {
	Create(ctx context.Context, notif Notification) error

	// Get returns ErrNotificationNotFound when owner has no record with id.
	Get(ctx context.Context, owner, id string) (*Notification, error)

	// List returns the owner's unexpired notifications, newest first.
	List(ctx context.Context, owner string, opts ListOptions) ([]Notification, error)

	CountUnread(ctx context.Context, owner string) (int, error)

	// MarkRead returns ErrNotificationNotFound when owner has no record with
	// id. Marking an already read record succeeds.
	MarkRead(ctx context.Context, owner, id string) error

	// MarkAllRead returns how many records changed from unread to read,
	// so a second call returns 0.
	MarkAllRead(ctx context.Context, owner string) (int, error)

	// Delete returns ErrNotificationNotFound when owner has no record with id.
	Delete(ctx context.Context, owner, id string) error

	// DeleteAll removes every record of owner and returns how many were removed.
	DeleteAll(ctx context.Context, owner string) (int, error)
}

// ListOptions filters and pages List results.
type ListOptions struct {
	Limit      int // 0 means no limit
	Offset     int
	OnlyUnread bool
	Types      []Type     // empty means any type
	Since      *time.Time // created at or after
}
