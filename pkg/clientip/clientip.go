package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Resolver finds the client address of a request. Forwarding headers are
// only honoured when listed, in priority order: a server reachable directly
// from the internet must not trust any of them.
type Resolver struct {
	headers []string
}

// DefaultHeaders suits a deployment behind a single reverse proxy.
var DefaultHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// New returns a Resolver trusting headers in the given order. With no
// headers only RemoteAddr is used.
func New(headers ...string) *Resolver {
	return &Resolver{headers: headers}
}

// IP returns the first valid address found in the trusted headers, falling
// back to RemoteAddr. For list headers such as X-Forwarded-For the leftmost
// valid entry wins. Returns "" when nothing parses.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		for entry := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := parseIP(entry); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
