package handler

import (
	"net/http"
	"strings"
)

// IsAJAX reports whether the request was sent by a script, marked with
// X-Requested-With: XMLHttpRequest.
func IsAJAX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// WantsJSON reports whether the client prefers a JSON answer.
func WantsJSON(r *http.Request) bool {
	return IsAJAX(r) || strings.Contains(r.Header.Get("Accept"), "application/json")
}
