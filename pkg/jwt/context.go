package jwt

import "context"

type contextKey struct{ name string }

func (c contextKey) String() string { return c.name }

var (
	tokenContextKey  = &contextKey{name: "jwt"}
	claimsContextKey = &contextKey{name: "jwt_claims"}
)

func SetToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

func SetClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func GetClaims(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(UserClaims)
	return claims, ok
}

// Username returns the authenticated username stored by the middleware.
// ok is false for anonymous requests.
func Username(ctx context.Context) (string, bool) {
	claims, ok := GetClaims(ctx)
	if !ok || claims.Name() == "" {
		return "", false
	}
	return claims.Name(), true
}
