package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Option configures the middleware returned by New.
type Option func(*options)

type options struct {
	header    string
	trust     bool
	generator func() string
}

// WithHeader changes the header read from the client and echoed back.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// WithTrustIncoming controls whether a well-formed id sent by the client is
// reused. Enabled by default; disable when the server faces the internet
// directly.
func WithTrustIncoming(trust bool) Option {
	return func(o *options) {
		o.trust = trust
	}
}

func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generator = fn
		}
	}
}

// New returns middleware that stores a request id in the request context and
// sets it on the response header.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{
		header:    Header,
		trust:     true,
		generator: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(o.header)
			if !o.trust || !isValid(id) {
				id = o.generator()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func isValid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
