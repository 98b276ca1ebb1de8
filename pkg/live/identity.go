package live

import "log/slog"

// Identity is who is on the other end of a connection.
// The zero value is anonymous.
type Identity struct {
	username string
}

// Anonymous returns the identity of an unauthenticated visitor.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns the identity of a logged-in user. An empty username
// yields an anonymous identity.
func Authenticated(username string) Identity {
	return Identity{username: username}
}

func (i Identity) IsAnonymous() bool {
	return i.username == ""
}

// Username is empty for anonymous identities.
func (i Identity) Username() string {
	return i.username
}

func (i Identity) String() string {
	if i.IsAnonymous() {
		return "anonymous"
	}
	return i.username
}

func (i Identity) LogValue() slog.Value {
	return slog.StringValue(i.String())
}
