package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/requestid"
)

// NewErrorHandler returns an ErrorHandler that logs err and answers with its
// HTTPError status: JSON for AJAX or JSON-accepting clients, plain text
// otherwise. Client errors are logged at warn, server errors at error and
// requests abandoned by the client at debug.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status, key := classify(err)
		reqID := requestid.FromContext(r.Context())

		level := slog.LevelError
		switch {
		case errors.Is(err, context.Canceled):
			level = slog.LevelDebug
		case status < http.StatusInternalServerError:
			level = slog.LevelWarn
		}

		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if WantsJSON(r) {
			_ = JSON(ErrorBody{Error: key, RequestID: reqID}, WithJSONStatus(status)).Render(ctx.ResponseWriter(), r)
			return
		}
		http.Error(ctx.ResponseWriter(), key, status)
	}
}
