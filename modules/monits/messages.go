package monits

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/monitio/handler"
	"github.com/dmitrymomot/monitio/pkg/binder"
	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/notifications"
)

// MessageStore is the owner-scoped notification API the endpoints need.
// *notifications.Manager implements it.
type MessageStore interface {
	Open(ctx context.Context, owner, id string) (*notifications.Notification, error)
	List(ctx context.Context, owner string, opts notifications.ListOptions) ([]notifications.Notification, error)
	CountUnread(ctx context.Context, owner string) (int, error)
	MarkRead(ctx context.Context, owner, id string) error
	MarkAllRead(ctx context.Context, owner string) (int, error)
	Delete(ctx context.Context, owner, id string) error
	DeleteAll(ctx context.Context, owner string) (int, error)
}

// MessageService serves the notification endpoints of the signed-in user.
type MessageService struct {
	store        MessageStore
	identity     IdentityFunc
	fallbackURL  string
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

type MessageOption func(*MessageService)

func WithMessageIdentity(fn IdentityFunc) MessageOption {
	return func(s *MessageService) {
		if fn != nil {
			s.identity = fn
		}
	}
}

// WithFallbackURL sets where non-AJAX requests without a usable Referer are
// redirected. Defaults to "/".
func WithFallbackURL(url string) MessageOption {
	return func(s *MessageService) {
		if url != "" {
			s.fallbackURL = url
		}
	}
}

func WithMessageLogger(l *slog.Logger) MessageOption {
	return func(s *MessageService) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMessageErrorHandler(h handler.ErrorHandler[handler.Context]) MessageOption {
	return func(s *MessageService) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

func NewMessageService(store MessageStore, opts ...MessageOption) *MessageService {
	s := &MessageService{
		store:       store,
		identity:    JWTIdentity,
		fallbackURL: "/",
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger)
	}
	return s
}

func (s *MessageService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.list,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/unread", handler.Wrap(s.unread,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	all := []handler.WrapOption[handler.Context, struct{}]{
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	}
	r.Post("/read", handler.Wrap(s.markAllRead, all...))
	r.Post("/delete", handler.Wrap(s.deleteAll, all...))
	r.Delete("/", handler.Wrap(s.deleteAll, all...))

	one := []handler.WrapOption[handler.Context, MessageRequest]{
		handler.WithBinders[handler.Context, MessageRequest](binder.ChiPath()),
		handler.WithErrorHandler[handler.Context, MessageRequest](s.errorHandler),
	}
	r.Get("/{id}", handler.Wrap(s.detail, one...))
	r.Post("/{id}/read", handler.Wrap(s.markRead, one...))
	r.Post("/{id}/delete", handler.Wrap(s.delete, one...))
	r.Delete("/{id}", handler.Wrap(s.delete, one...))

	return r
}

type MessageRequest struct {
	ID string `path:"id"`
}

type listResponse struct {
	Messages []notifications.Notification `json:"messages"`
	Unread   int                          `json:"unread"`
}

type unreadResponse struct {
	Unread int `json:"unread"`
}

// owner returns the caller's username, or false for anonymous callers.
func (s *MessageService) owner(ctx handler.Context) (string, bool) {
	id := s.identity(ctx)
	if id.IsAnonymous() {
		return "", false
	}
	return id.Username(), true
}

// done answers a successful mutation: 200 with an empty body for AJAX
// callers, a redirect back for everyone else.
func (s *MessageService) done(ctx handler.Context) handler.Response {
	if handler.IsAJAX(ctx.Request()) {
		return handler.EmptyWithStatus(http.StatusOK)
	}
	return handler.RedirectBack(s.fallbackURL)
}

func (s *MessageService) detail(ctx handler.Context, req MessageRequest) handler.Response {
	owner, ok := s.owner(ctx)
	if !ok {
		return handler.Error(handler.ErrForbidden)
	}

	n, err := s.store.Open(ctx, owner, req.ID)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.JSON(n)
}

func (s *MessageService) list(ctx handler.Context, _ struct{}) handler.Response {
	owner, ok := s.owner(ctx)
	if !ok {
		return handler.Error(handler.ErrForbidden)
	}

	opts, err := listOptions(ctx.Request())
	if err != nil {
		return handler.Error(handler.ErrBadRequest.Wrap(err))
	}

	messages, err := s.store.List(ctx, owner, opts)
	if err != nil {
		return handler.Error(httpError(err))
	}
	unread, err := s.store.CountUnread(ctx, owner)
	if err != nil {
		return handler.Error(httpError(err))
	}
	if messages == nil {
		messages = []notifications.Notification{}
	}
	return handler.JSON(listResponse{Messages: messages, Unread: unread})
}

func (s *MessageService) unread(ctx handler.Context, _ struct{}) handler.Response {
	owner, ok := s.owner(ctx)
	if !ok {
		return handler.Error(handler.ErrForbidden)
	}

	count, err := s.store.CountUnread(ctx, owner)
	if err != nil {
		return handler.Error(httpError(err))
	}
	return handler.JSON(unreadResponse{Unread: count})
}

func (s *MessageService) markRead(ctx handler.Context, req MessageRequest) handler.Response {
	owner, ok := s.owner(ctx)
	if !ok {
		return handler.Error(handler.ErrForbidden)
	}

	if err := s.store.MarkRead(ctx, owner, req.ID); err != nil {
		return handler.Error(httpError(err))
	}
	return s.done(ctx)
}

func (s *MessageService) markAllRead(ctx handler.Context, _ struct{}) handler.Response {
	owner, ok := s.owner(ctx)
	if !ok {
		return handler.Error(handler.ErrForbidden)
	}

	count, err := s.store.MarkAllRead(ctx, owner)
	if err != nil {
		return handler.Error(httpError(err))
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "messages marked read",
		logger.UserID(owner),
		logger.Count(count),
		logger.Component("monits"),
	)
	return s.done(ctx)
}

func (s *MessageService) delete(ctx handler.Context, req MessageRequest) handler.Response {
	owner, ok := s.owner(ctx)
	if !ok {
		return handler.Error(handler.ErrForbidden)
	}

	if err := s.store.Delete(ctx, owner, req.ID); err != nil {
		return handler.Error(httpError(err))
	}
	return s.done(ctx)
}

func (s *MessageService) deleteAll(ctx handler.Context, _ struct{}) handler.Response {
	owner, ok := s.owner(ctx)
	if !ok {
		return handler.Error(handler.ErrForbidden)
	}

	count, err := s.store.DeleteAll(ctx, owner)
	if err != nil {
		return handler.Error(httpError(err))
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "messages deleted",
		logger.UserID(owner),
		logger.Count(count),
		logger.Component("monits"),
	)
	return s.done(ctx)
}

// listOptions reads limit, offset, unread and type from the query string.
func listOptions(r *http.Request) (notifications.ListOptions, error) {
	q := r.URL.Query()
	var opts notifications.ListOptions

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errInvalidQuery("limit")
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errInvalidQuery("offset")
		}
		opts.Offset = n
	}
	if v := q.Get("unread"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errInvalidQuery("unread")
		}
		opts.OnlyUnread = b
	}
	for _, t := range q["type"] {
		opts.Types = append(opts.Types, notifications.Type(t))
	}
	return opts, nil
}
