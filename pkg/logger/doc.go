// Package logger builds *slog.Logger instances for monitio services and
// provides attribute helpers so field names stay consistent across packages.
//
// New wraps the chosen slog handler (text or JSON) with LogHandlerDecorator,
// which runs registered ContextExtractor callbacks on every record. This is how
// request ids end up on log lines emitted deep inside the live-push loop.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "monitio"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.LogAttrs(ctx, slog.LevelInfo, "subscription opened",
//	    logger.Channel(sub.Channel),
//	    logger.SubscriptionID(sub.ID),
//	)
//
// Helpers such as Error and UserID return an empty slog.Attr for nil or empty
// input, so callers never need a guard before logging.
package logger
