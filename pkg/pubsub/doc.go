// Package pubsub carries live events from publishers to the streaming
// connections subscribed to a channel.
//
// Two buses are provided. RedisBus uses Redis PUBLISH/SUBSCRIBE and encodes
// every event as the JSON array [type, data]. MemoryBus fans events out inside
// one process and is meant for single-node development setups.
//
// Delivery is fire-and-forget: an event published while nobody is subscribed
// to its channel is lost, and subscribers never see events published before
// they subscribed.
//
//	bus := pubsub.NewRedisBus(client, pubsub.WithLogger(log))
//
//	sub, err := bus.Subscribe(ctx, "alice")
//	if err != nil {
//		return err
//	}
//	defer sub.Close()
//
//	for {
//		ev, err := sub.Receive(ctx)
//		if err != nil {
//			return err
//		}
//		fmt.Println(ev.Type, ev.Data)
//	}
package pubsub
