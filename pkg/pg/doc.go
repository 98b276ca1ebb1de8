// Package pg connects to PostgreSQL with pgx/v5 and applies goose migrations
// from an embedded filesystem.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, notifications.Migrations(), cfg, log); err != nil {
//		return err
//	}
//
// Connect retries with a growing pause between attempts and gives up early when
// ctx is cancelled. Healthcheck returns a probe suitable for a readiness
// endpoint. IsNotFoundError and IsDuplicateKeyError classify pgx errors.
package pg
