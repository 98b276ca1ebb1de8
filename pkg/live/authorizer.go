package live

import "github.com/google/uuid"

// AnonymousChannel is the channel shared by all anonymous visitors.
const AnonymousChannel = "__anonymous__"

// Decision is the outcome of a channel access check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorizer evaluates channel access. It holds no per-connection state and
// is safe for concurrent use.
type Authorizer struct {
	allowAnonymous bool
	defaultChannel string
}

// AuthorizerOption configures an Authorizer.
type AuthorizerOption func(*Authorizer)

// WithAnonymous toggles access to AnonymousChannel for anonymous visitors.
// Enabled by default.
func WithAnonymous(allow bool) AuthorizerOption {
	return func(a *Authorizer) {
		a.allowAnonymous = allow
	}
}

// WithDefaultChannel sets the channel used when a request names none.
// Defaults to AnonymousChannel.
func WithDefaultChannel(channel string) AuthorizerOption {
	return func(a *Authorizer) {
		if channel != "" {
			a.defaultChannel = channel
		}
	}
}

func NewAuthorizer(opts ...AuthorizerOption) *Authorizer {
	a := &Authorizer{
		allowAnonymous: true,
		defaultChannel: AnonymousChannel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Channel returns the channel a request for channel actually targets.
func (a *Authorizer) Channel(channel string) string {
	if channel == "" {
		return a.defaultChannel
	}
	return channel
}

// Authorize decides whether id may listen on channel.
func (a *Authorizer) Authorize(id Identity, channel string) Decision {
	channel = a.Channel(channel)

	if id.IsAnonymous() {
		if a.allowAnonymous && channel == AnonymousChannel {
			return Allow
		}
		return Deny
	}

	if id.Username() == channel {
		return Allow
	}
	return Deny
}

// Subscribe authorizes id on channel and opens a live subscription.
// A denied request returns ErrForbidden and no subscription.
func (a *Authorizer) Subscribe(id Identity, channel string) (*Subscription, error) {
	channel = a.Channel(channel)
	if a.Authorize(id, channel) != Allow {
		return nil, ErrForbidden
	}
	return newSubscription(uuid.NewString(), id, channel), nil
}
