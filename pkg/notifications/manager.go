package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/monitio/pkg/logger"
)

// Manager stores notifications and then pushes them live. Storage errors
// fail the call; delivery errors are only logged.
type Manager struct {
	storage   Storage
	deliverer Deliverer
	logger    *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager. A nil deliverer disables live push.
func NewManager(storage Storage, deliverer Deliverer, opts ...ManagerOption) *Manager {
	if deliverer == nil {
		deliverer = NoOpDeliverer{}
	}

	m := &Manager{
		storage:   storage,
		deliverer: deliverer,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send stores notif, filling in ID, type and creation time when missing, and
// pushes it to the owner's channel. The stored record is returned.
func (m *Manager) Send(ctx context.Context, notif Notification) (Notification, error) {
	prepare(&notif, time.Now().UTC())

	if err := m.storage.Create(ctx, notif); err != nil {
		return Notification{}, fmt.Errorf("failed to store notification: %w", err)
	}

	if err := m.deliverer.Deliver(ctx, notif); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "notification stored but not delivered",
			logger.NotificationID(notif.ID),
			logger.UserID(notif.Owner),
			logger.Error(err),
		)
	}
	return notif, nil
}

// SendToUsers stores a copy of template for every owner, then delivers them
// as one batch.
func (m *Manager) SendToUsers(ctx context.Context, owners []string, template Notification) ([]Notification, error) {
	notifs := make([]Notification, 0, len(owners))
	for _, owner := range owners {
		notif := template
		notif.ID = ""
		notif.Owner = owner
		notifs = append(notifs, notif)
	}
	return m.SendBatch(ctx, notifs)
}

// SendBatch stores every notification and delivers them as one batch. On a
// storage error it stops, skips delivery and returns what was stored so far.
func (m *Manager) SendBatch(ctx context.Context, notifs []Notification) ([]Notification, error) {
	now := time.Now().UTC()
	stored := make([]Notification, 0, len(notifs))
	for _, notif := range notifs {
		prepare(&notif, now)
		if err := m.storage.Create(ctx, notif); err != nil {
			return stored, fmt.Errorf("failed to store notification for %s: %w", notif.Owner, err)
		}
		stored = append(stored, notif)
	}

	if err := m.deliverer.DeliverBatch(ctx, stored); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "notification batch stored but not delivered",
			logger.Count(len(stored)),
			logger.Error(err),
		)
	}
	return stored, nil
}

func (m *Manager) Get(ctx context.Context, owner, id string) (*Notification, error) {
	return m.storage.Get(ctx, owner, id)
}

// Open returns the notification and marks it read. The returned record
// reflects the read state.
func (m *Manager) Open(ctx context.Context, owner, id string) (*Notification, error) {
	notif, err := m.storage.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := m.storage.MarkRead(ctx, owner, id); err != nil {
		return nil, err
	}
	notif.MarkAsRead()
	return notif, nil
}

func (m *Manager) List(ctx context.Context, owner string, opts ListOptions) ([]Notification, error) {
	return m.storage.List(ctx, owner, opts)
}

func (m *Manager) CountUnread(ctx context.Context, owner string) (int, error) {
	return m.storage.CountUnread(ctx, owner)
}

func (m *Manager) MarkRead(ctx context.Context, owner, id string) error {
	return m.storage.MarkRead(ctx, owner, id)
}

func (m *Manager) MarkAllRead(ctx context.Context, owner string) (int, error) {
	return m.storage.MarkAllRead(ctx, owner)
}

func (m *Manager) Delete(ctx context.Context, owner, id string) error {
	return m.storage.Delete(ctx, owner, id)
}

func (m *Manager) DeleteAll(ctx context.Context, owner string) (int, error) {
	return m.storage.DeleteAll(ctx, owner)
}

func prepare(notif *Notification, now time.Time) {
	if notif.ID == "" {
		notif.ID = uuid.NewString()
	}
	if notif.Type == "" {
		notif.Type = TypeInfo
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = now
	}
}
