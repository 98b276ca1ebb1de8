package notifications

import (
	"context"
)

// Enqueuer accepts messages for later emission, such as live.PendingQueue.
type Enqueuer interface {
	Enqueue(msgs ...string)
}

// QueueDeliverer puts notification payloads on a queue instead of the bus.
// It backs test mode, where streams replay the queue rather than listen.
type QueueDeliverer struct {
	queue Enqueuer
}

func NewQueueDeliverer(queue Enqueuer) *QueueDeliverer {
	return &QueueDeliverer{queue: queue}
}

func (d *QueueDeliverer) Deliver(ctx context.Context, notif Notification) error {
	payload, err := notif.Payload()
	if err != nil {
		return err
	}
	d.queue.Enqueue(payload)
	return nil
}

func (d *QueueDeliverer) DeliverBatch(ctx context.Context, notifs []Notification) error {
	payloads := make([]string, 0, len(notifs))
	for _, n := range notifs {
		payload, err := n.Payload()
		if err != nil {
			return err
		}
		payloads = append(payloads, payload)
	}
	d.queue.Enqueue(payloads...)
	return nil
}
