package jwt

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/monitio/pkg/logger"
)

// TokenExtractorFunc pulls a raw token out of a request. It returns
// ErrMissingToken when the request carries none.
type TokenExtractorFunc func(r *http.Request) (string, error)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	extractor TokenExtractorFunc
	required  bool
	log       *slog.Logger
}

func WithExtractor(extractor TokenExtractorFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if extractor != nil {
			c.extractor = extractor
		}
	}
}

// WithRequired makes the middleware answer 401 when no valid token is
// present instead of passing the request through as anonymous.
func WithRequired(required bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.required = required
	}
}

func WithLogger(log *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// Middleware verifies the request token and stores its UserClaims in the
// request context. By default a missing or invalid token leaves the request
// anonymous; downstream code decides what anonymous callers may do.
func Middleware(service *Service, opts ...MiddlewareOption) func(next http.Handler) http.Handler {
	cfg := middlewareConfig{
		extractor: BearerTokenExtractor,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cfg.extractor(r)
			if err == nil {
				var claims UserClaims
				claims, err = service.ParseUser(token)
				if err == nil {
					ctx := SetClaims(SetToken(r.Context(), token), claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				cfg.log.LogAttrs(r.Context(), slog.LevelDebug, "rejected token",
					logger.Error(err),
					logger.Component("jwt"),
				)
			}

			if cfg.required {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerTokenExtractor reads "Authorization: Bearer <token>".
func BearerTokenExtractor(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}

// CookieTokenExtractor reads the token from the named cookie.
func CookieTokenExtractor(name string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(name)
		if err != nil || cookie.Value == "" {
			return "", ErrMissingToken
		}
		return cookie.Value, nil
	}
}

// QueryTokenExtractor reads the token from a query parameter. EventSource
// cannot set headers, so browsers without cookies pass the token this way.
func QueryTokenExtractor(param string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.URL.Query().Get(param)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// FirstOf tries extractors in order and returns the first token found.
func FirstOf(extractors ...TokenExtractorFunc) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		err := ErrMissingToken
		for _, extract := range extractors {
			token, e := extract(r)
			if e == nil {
				return token, nil
			}
			if !errors.Is(e, ErrMissingToken) {
				err = e
			}
		}
		return "", err
	}
}
