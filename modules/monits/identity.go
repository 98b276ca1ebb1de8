package monits

import (
	"context"

	"github.com/dmitrymomot/monitio/pkg/jwt"
	"github.com/dmitrymomot/monitio/pkg/live"
)

// IdentityFunc resolves the caller of a request. It never fails: callers
// without credentials are anonymous.
type IdentityFunc func(ctx context.Context) live.Identity

// JWTIdentity reads the username stored by jwt.Middleware.
func JWTIdentity(ctx context.Context) live.Identity {
	if name, ok := jwt.Username(ctx); ok {
		return live.Authenticated(name)
	}
	return live.Anonymous()
}
