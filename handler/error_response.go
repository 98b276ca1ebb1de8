package handler

import "net/http"

// Error returns a Response that fails rendering with err, so the error goes
// through the configured ErrorHandler.
func Error(err error) Response {
	return ResponseFunc(func(http.ResponseWriter, *http.Request) error {
		return err
	})
}
