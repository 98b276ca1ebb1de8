package monits_test

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/monitio/pkg/live"
)

type userKey struct{}

// headerIdentity reads the username stored by withTestUser.
func headerIdentity(ctx context.Context) live.Identity {
	if name, ok := ctx.Value(userKey{}).(string); ok && name != "" {
		return live.Authenticated(name)
	}
	return live.Anonymous()
}

// withTestUser trusts X-Test-User as the signed-in username.
func withTestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if name := r.Header.Get("X-Test-User"); name != "" {
			r = r.WithContext(context.WithValue(r.Context(), userKey{}, name))
		}
		next.ServeHTTP(w, r)
	})
}
