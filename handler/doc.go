// Package handler turns typed handler functions into net/http handlers.
//
// A HandlerFunc receives a Context and a request struct filled by binders,
// and returns a Response. Wrap glues it to net/http and routes every binder
// or render error to an ErrorHandler:
//
//	type messageRequest struct {
//		ID string `path:"id"`
//	}
//
//	func markRead(ctx handler.Context, req messageRequest) handler.Response {
//		if err := store.MarkRead(ctx, owner(ctx), req.ID); err != nil {
//			return handler.Error(err)
//		}
//		return handler.RedirectBack("/")
//	}
//
//	router.Post("/{id}/read", handler.Wrap(markRead,
//		handler.WithBinders[handler.Context, messageRequest](binder.ChiPath()),
//		handler.WithErrorHandler[handler.Context, messageRequest](handler.NewErrorHandler(log)),
//	))
//
// Responses: Empty and EmptyWithStatus, JSON, RedirectBack, Error and Stream.
// Stream opens a server-sent event response through the datastar SSE
// generator; each Send writes one "event:" line followed by one "data:" line
// per line of payload.
//
// HTTPError carries the status code an error is answered with. The
// predefined values (ErrForbidden, ErrNotFound, ...) match wrapped copies
// through errors.Is.
package handler
