package monits

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/monitio/handler"
	"github.com/dmitrymomot/monitio/pkg/binder"
	"github.com/dmitrymomot/monitio/pkg/live"
	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/pubsub"
)

// StreamService serves the live channel endpoint. Which feed backs the
// stream is decided by whoever constructs the service.
type StreamService struct {
	authorizer   *live.Authorizer
	feed         live.Feed
	identity     IdentityFunc
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

type StreamOption func(*StreamService)

func WithStreamIdentity(fn IdentityFunc) StreamOption {
	return func(s *StreamService) {
		if fn != nil {
			s.identity = fn
		}
	}
}

func WithStreamLogger(l *slog.Logger) StreamOption {
	return func(s *StreamService) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithStreamErrorHandler(h handler.ErrorHandler[handler.Context]) StreamOption {
	return func(s *StreamService) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

func NewStreamService(authorizer *live.Authorizer, feed live.Feed, opts ...StreamOption) *StreamService {
	s := &StreamService{
		authorizer: authorizer,
		feed:       feed,
		identity:   JWTIdentity,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger)
	}
	return s
}

// Handle mounts GET / (default channel) and GET /{channel}. No CSRF
// middleware belongs on these routes: opening a stream mutates nothing.
func (s *StreamService) Handle() http.Handler {
	r := chi.NewRouter()

	h := handler.Wrap(s.stream,
		handler.WithBinders[handler.Context, StreamRequest](binder.ChiPath()),
		handler.WithErrorHandler[handler.Context, StreamRequest](s.errorHandler),
	)
	r.Get("/", h)
	r.Get("/{channel}", h)

	return r
}

type StreamRequest struct {
	Channel string `path:"channel"`
}

func (s *StreamService) stream(ctx handler.Context, req StreamRequest) handler.Response {
	identity := s.identity(ctx)

	sub, err := s.authorizer.Subscribe(identity, req.Channel)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "live channel denied",
			logger.Channel(s.authorizer.Channel(req.Channel)),
			logger.UserID(identity.Username()),
			logger.Component("monits"),
		)
		return handler.Error(httpError(err))
	}

	return handler.Stream(func(r *http.Request, w handler.StreamWriter) error {
		defer sub.Close()

		err := s.feed.Stream(r.Context(), sub, func(ev pubsub.Event) error {
			return w.Send(ev.Type, ev.Data)
		})
		if err != nil {
			// Headers are already sent; the stream just ends.
			s.logger.LogAttrs(r.Context(), slog.LevelWarn, "live stream ended by feed error",
				logger.Error(err),
				logger.SubscriptionID(sub.ID),
				logger.Channel(sub.Channel),
				logger.Component("monits"),
			)
		}
		return nil
	})
}
