// Package mongo opens MongoDB connections for the document-backed
// notification store.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store := notifications.NewMongoStorage(db)
//
// New retries the initial ping and stops early when ctx is cancelled.
package mongo
