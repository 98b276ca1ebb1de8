package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/monitio/handler"
	"github.com/dmitrymomot/monitio/modules/monits"
	"github.com/dmitrymomot/monitio/pkg/clientip"
	"github.com/dmitrymomot/monitio/pkg/httpserver"
	"github.com/dmitrymomot/monitio/pkg/jwt"
	"github.com/dmitrymomot/monitio/pkg/live"
	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/mongo"
	"github.com/dmitrymomot/monitio/pkg/notifications"
	"github.com/dmitrymomot/monitio/pkg/pg"
	"github.com/dmitrymomot/monitio/pkg/pubsub"
	"github.com/dmitrymomot/monitio/pkg/redis"
	"github.com/dmitrymomot/monitio/pkg/requestid"
)

const readinessTimeout = 2 * time.Second

// app holds the wired components and the resources to release on exit.
type app struct {
	router  http.Handler
	manager *notifications.Manager
	queue   *live.PendingQueue
	checks  []httpserver.Check
	closers []func(context.Context) error
	log     *slog.Logger
}

func newApp(ctx context.Context, cfg Config, log *slog.Logger) (_ *app, err error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	a := &app{log: log}
	defer func() {
		if err != nil {
			_ = a.close(context.Background())
		}
	}()

	store, err := a.storage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	feed, deliverer, err := a.live(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a.manager = notifications.NewManager(store, deliverer, notifications.WithManagerLogger(log))

	identity, err := identityMiddleware(cfg, log)
	if err != nil {
		return nil, err
	}

	errorHandler := handler.NewErrorHandler(log)
	authorizer := live.NewAuthorizer(live.WithAnonymous(cfg.AllowAnonymous))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(clientip.New(cfg.TrustedProxyHeaders...).Middleware)
	if identity != nil {
		r.Use(identity)
	}

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, readinessTimeout, a.checks...))
	r.Mount("/", monits.Router(monits.RouterOptions{
		Stream: monits.NewStreamService(authorizer, feed,
			monits.WithStreamLogger(log),
			monits.WithStreamErrorHandler(errorHandler),
		),
		Messages: monits.NewMessageService(a.manager,
			monits.WithMessageLogger(log),
			monits.WithMessageErrorHandler(errorHandler),
		),
	}))
	a.router = r

	return a, nil
}

func (a *app) storage(ctx context.Context, cfg Config) (notifications.Storage, error) {
	switch cfg.StorageDriver {
	case StoragePostgres:
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error {
			pool.Close()
			return nil
		})
		if err := pg.Migrate(ctx, pool, notifications.Migrations(), cfg.PG, a.log); err != nil {
			return nil, err
		}
		a.checks = append(a.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
		return notifications.NewPostgresStorage(pool), nil

	case StorageMongo:
		db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Client().Disconnect)
		store := notifications.NewMongoStorage(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		a.checks = append(a.checks, httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(db.Client())})
		return store, nil

	default:
		return notifications.NewMemoryStorage(), nil
	}
}

// live picks the feed behind the stream endpoint and the matching
// deliverer: the pending queue in test mode, the bus otherwise.
func (a *app) live(ctx context.Context, cfg Config) (live.Feed, notifications.Deliverer, error) {
	if cfg.Testing {
		a.queue = live.NewPendingQueue()
		a.log.LogAttrs(ctx, slog.LevelWarn, "test mode: live streams are served from the pending queue",
			logger.Component("monitio"),
		)
		return live.NewTestFeed(a.queue, live.WithLogger(a.log)), notifications.NewQueueDeliverer(a.queue), nil
	}

	var bus pubsub.Bus
	switch cfg.PubSubDriver {
	case PubSubMemory:
		mem := pubsub.NewMemoryBus(cfg.BusBuffer)
		a.closers = append(a.closers, func(context.Context) error { return mem.Close() })
		bus = mem
	default:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		bus = pubsub.NewRedisBus(client, pubsub.WithLogger(a.log))
	}

	feed := live.NewPushBridge(bus, live.WithLogger(a.log))
	deliverer := notifications.NewBusDeliverer(bus, notifications.WithBusLogger(a.log))
	return feed, deliverer, nil
}

func identityMiddleware(cfg Config, log *slog.Logger) (func(http.Handler) http.Handler, error) {
	if cfg.JWTSigningKey == "" {
		log.Warn("JWT_SIGNING_KEY is empty: every caller is anonymous", logger.Component("monitio"))
		return nil, nil
	}

	svc, err := jwt.NewFromString(cfg.JWTSigningKey)
	if err != nil {
		return nil, err
	}
	return jwt.Middleware(svc,
		jwt.WithExtractor(jwt.FirstOf(
			jwt.BearerTokenExtractor,
			jwt.CookieTokenExtractor(cfg.JWTCookieName),
			jwt.QueryTokenExtractor(cfg.JWTQueryParam),
		)),
		jwt.WithLogger(log),
	), nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
