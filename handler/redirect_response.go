package handler

import (
	"net/http"
	"net/url"
	"strings"
)

type redirectBackResponse struct {
	fallback string
	code     int
}

func (r redirectBackResponse) Render(w http.ResponseWriter, req *http.Request) error {
	target := r.fallback
	if referer := req.Header.Get("Referer"); referer != "" && sameHost(referer, req) {
		target = referer
	}
	http.Redirect(w, req, target, r.code)
	return nil
}

// RedirectBack redirects to the Referer, or to fallback when the header is
// missing or points at another host. Answers 302 Found.
func RedirectBack(fallback string) Response {
	return redirectBackResponse{fallback: fallback, code: http.StatusFound}
}

// RedirectBackWithCode is RedirectBack with an explicit status code.
func RedirectBackWithCode(fallback string, code int) Response {
	return redirectBackResponse{fallback: fallback, code: code}
}

// sameHost accepts an absolute http(s) URL on the request host or a path
// rooted at "/". Browsers read a backslash as a slash, so "/\evil.com" is
// treated like "//evil.com" and refused.
func sameHost(raw string, r *http.Request) bool {
	if strings.ContainsAny(raw, "\\\r\n\t") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	switch u.Scheme {
	case "":
		return u.Host == "" && strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//")
	case "http", "https":
		return u.Host != "" && u.Host == r.Host
	default:
		return false
	}
}
