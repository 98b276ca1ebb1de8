package live

import "sync"

// Subscription is one authorized connection listening on one channel.
// Once closed it stays closed and nothing more may be sent on it.
type Subscription struct {
	ID       string
	Identity Identity
	Channel  string

	done chan struct{}
	once sync.Once
}

func newSubscription(id string, identity Identity, channel string) *Subscription {
	return &Subscription{
		ID:       id,
		Identity: identity,
		Channel:  channel,
		done:     make(chan struct{}),
	}
}

// Live reports whether the subscription is still open.
func (s *Subscription) Live() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Done is closed when the subscription is closed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close ends the subscription. Calling it again has no effect.
func (s *Subscription) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
