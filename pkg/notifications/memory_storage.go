package notifications

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStorage keeps notifications in process memory. It is meant for
// development and tests.
type MemoryStorage struct {
	byOwner map[string][]Notification
	owners  map[string]string // id -> owner
	mu      sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byOwner: make(map[string][]Notification),
		owners:  make(map[string]string),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, notif Notification) error {
	if err := notif.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.owners[notif.ID]; exists {
		return ErrDuplicateID
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now().UTC()
	}

	s.byOwner[notif.Owner] = append(s.byOwner[notif.Owner], notif)
	s.owners[notif.ID] = notif.Owner
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, owner, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(owner, id)
	if i < 0 {
		return nil, ErrNotificationNotFound
	}
	notif := s.byOwner[owner][i]
	return &notif, nil
}

func (s *MemoryStorage) List(ctx context.Context, owner string, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]Notification, 0, len(s.byOwner[owner]))
	for _, n := range s.byOwner[owner] {
		if n.IsExpired() {
			continue
		}
		if opts.OnlyUnread && n.Read {
			continue
		}
		if len(opts.Types) > 0 && !slices.Contains(opts.Types, n.Type) {
			continue
		}
		if opts.Since != nil && n.CreatedAt.Before(*opts.Since) {
			continue
		}
		filtered = append(filtered, n)
	}

	slices.SortStableFunc(filtered, func(a, b Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	start := min(opts.Offset, len(filtered))
	end := len(filtered)
	if opts.Limit > 0 {
		end = min(start+opts.Limit, end)
	}
	return filtered[start:end], nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, owner string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byOwner[owner] {
		if !n.Read && !n.IsExpired() {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(owner, id)
	if i < 0 {
		return ErrNotificationNotFound
	}
	s.byOwner[owner][i].MarkAsRead()
	return nil
}

func (s *MemoryStorage) MarkAllRead(ctx context.Context, owner string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	notifs := s.byOwner[owner]
	for i := range notifs {
		if !notifs[i].Read {
			notifs[i].MarkAsRead()
			changed++
		}
	}
	return changed, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(owner, id)
	if i < 0 {
		return ErrNotificationNotFound
	}
	s.byOwner[owner] = slices.Delete(s.byOwner[owner], i, i+1)
	delete(s.owners, id)
	return nil
}

func (s *MemoryStorage) DeleteAll(ctx context.Context, owner string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifs := s.byOwner[owner]
	for _, n := range notifs {
		delete(s.owners, n.ID)
	}
	delete(s.byOwner, owner)
	return len(notifs), nil
}

// index must be called with s.mu held.
func (s *MemoryStorage) index(owner, id string) int {
	if s.owners[id] != owner {
		return -1
	}
	return slices.IndexFunc(s.byOwner[owner], func(n Notification) bool {
		return n.ID == id
	})
}
