// Package notifications stores per-user notifications and pushes new ones to
// their owner's live channel.
//
// Storage is the persistence contract. Every method takes the owner and a
// record owned by someone else is reported as ErrNotificationNotFound, the same
// as a missing one. Three implementations are provided: MemoryStorage,
// PostgresStorage (schema in Migrations) and MongoStorage.
//
// Manager writes to storage first and only then hands the record to a
// Deliverer, so a push failure never loses a notification:
//
//	store := notifications.NewMemoryStorage()
//	bus := pubsub.NewRedisBus(client)
//	manager := notifications.NewManager(store, notifications.NewBusDeliverer(bus))
//
//	notif, err := manager.Send(ctx, notifications.Notification{
//		Owner:   "alice",
//		Title:   "Build finished",
//		Message: "main is green again",
//	})
//
// BusDeliverer publishes the notification JSON as a "message" event on the
// channel named after the owner. QueueDeliverer appends the same payload to a
// queue drained by the test-mode feed. MultiDeliverer and NoOpDeliverer
// compose or disable delivery.
package notifications
