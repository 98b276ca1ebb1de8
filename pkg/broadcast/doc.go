// Package broadcast provides type-safe in-process fan-out.
//
// MemoryBroadcaster delivers every message to all of its subscribers without
// blocking the publisher: a subscriber whose buffer is full is dropped and its
// channel closed. Topics keeps one MemoryBroadcaster per name and is what the
// in-memory pub/sub bus is built on.
//
//	topics := broadcast.NewTopics[string](16)
//	defer topics.Close()
//
//	sub := topics.Subscribe(ctx, "alice")
//	defer sub.Close()
//
//	_ = topics.Publish(ctx, "alice", broadcast.Message[string]{Data: "hello"})
//	msg := <-sub.Receive(ctx)
//
// Subscriptions end when their context is cancelled, when Close is called, or
// when the broadcaster shuts down.
package broadcast
