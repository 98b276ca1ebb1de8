// Package monits exposes user notifications over HTTP.
//
// StreamService serves GET /channel/ and GET /channel/{channel} as a
// server-sent event stream. Each connection is checked by live.Authorizer:
// a signed-in user may only open the channel named after them, anonymous
// callers only the anonymous channel. Denied connections get 403.
//
// MessageService serves the signed-in user's notifications:
//
//	GET    /messages/            list (limit, offset, unread, type query params)
//	GET    /messages/unread      unread count
//	GET    /messages/{id}        detail, marks the record read
//	POST   /messages/{id}/read   mark one read
//	POST   /messages/read        mark all read
//	POST   /messages/{id}/delete delete one (also DELETE /messages/{id})
//	POST   /messages/delete      delete all (also DELETE /messages/)
//
// Anonymous callers get 403; records of other users are reported as not
// found. Mutations answer AJAX requests with an empty 200 and redirect
// everything else back to the Referer.
package monits
