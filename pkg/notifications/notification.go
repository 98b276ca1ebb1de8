package notifications

import (
	"encoding/json"
	"time"
)

// Type is the severity a notification is displayed with.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Notification is a message addressed to a single owner. The owner is the
// username whose live channel receives it.
type Notification struct {
	ID        string         `json:"id" bson:"_id"`
	Owner     string         `json:"owner" bson:"owner"`
	Type      Type           `json:"type" bson:"type"`
	Title     string         `json:"title,omitempty" bson:"title,omitempty"`
	Message   string         `json:"message" bson:"message"`
	URL       string         `json:"url,omitempty" bson:"url,omitempty"`
	Data      map[string]any `json:"data,omitempty" bson:"data,omitempty"`
	Read      bool           `json:"read" bson:"read"`
	ReadAt    *time.Time     `json:"read_at,omitempty" bson:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

// IsExpired reports whether the notification is past its expiry time.
func (n *Notification) IsExpired() bool {
	return n.ExpiresAt != nil && time.Now().After(*n.ExpiresAt)
}

// MarkAsRead flags the notification as read. The first read time is kept.
func (n *Notification) MarkAsRead() {
	if n.Read && n.ReadAt != nil {
		return
	}
	n.Read = true
	now := time.Now().UTC()
	n.ReadAt = &now
}

// Validate checks the fields every store requires.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return ErrMissingID
	}
	if n.Owner == "" {
		return ErrMissingOwner
	}
	return nil
}

// Payload renders the notification as the JSON pushed to live clients.
func (n *Notification) Payload() (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
