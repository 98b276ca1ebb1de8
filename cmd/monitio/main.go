// Command monitio serves user notifications and their live event streams.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/monitio/pkg/clientip"
	"github.com/dmitrymomot/monitio/pkg/config"
	"github.com/dmitrymomot/monitio/pkg/httpserver"
	"github.com/dmitrymomot/monitio/pkg/logger"
	"github.com/dmitrymomot/monitio/pkg/requestid"
)

func main() {
	cfg := config.MustLoad[Config](".env")

	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	}
	if lvl, err := cfg.level(); err == nil && lvl != nil {
		opts = append(opts, logger.WithLevel(*lvl))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("monitio stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.close(closeCtx); err != nil {
			log.Error("failed to release resources", logger.Error(err))
		}
	}()

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, a.router)
}
