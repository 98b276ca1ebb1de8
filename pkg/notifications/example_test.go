package notifications_test

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/monitio/pkg/live"
	"github.com/dmitrymomot/monitio/pkg/notifications"
)

func ExampleManager() {
	ctx := context.Background()

	queue := live.NewPendingQueue()
	manager := notifications.NewManager(
		notifications.NewMemoryStorage(),
		notifications.NewQueueDeliverer(queue),
	)

	_, _ = manager.Send(ctx, notifications.Notification{Owner: "alice", Message: "first"})
	_, _ = manager.Send(ctx, notifications.Notification{Owner: "alice", Message: "second"})

	unread, _ := manager.CountUnread(ctx, "alice")
	fmt.Println("unread:", unread)
	fmt.Println("queued:", queue.Len())

	marked, _ := manager.MarkAllRead(ctx, "alice")
	fmt.Println("marked:", marked)

	marked, _ = manager.MarkAllRead(ctx, "alice")
	fmt.Println("marked again:", marked)

	// Output:
	// unread: 2
	// queued: 2
	// marked: 2
	// marked again: 0
}
