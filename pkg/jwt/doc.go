// Package jwt issues and verifies HS256 tokens identifying users.
//
// Service signs any JSON claims; UserClaims carries the username that the
// rest of the application treats as the caller's identity. Middleware
// verifies a token taken from the request (bearer header, cookie or query
// parameter) and stores the claims in the request context. Requests without
// a valid token pass through anonymously unless WithRequired is set.
//
//	svc, _ := jwt.NewFromString(cfg.SigningKey)
//	router.Use(jwt.Middleware(svc, jwt.WithExtractor(jwt.FirstOf(
//		jwt.BearerTokenExtractor,
//		jwt.CookieTokenExtractor("monitio_token"),
//	))))
//
//	if name, ok := jwt.Username(r.Context()); ok {
//		// authenticated as name
//	}
//
// Only the standard library is used for signing and encoding.
package jwt
