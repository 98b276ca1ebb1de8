package broadcast

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Topics keeps one MemoryBroadcaster per topic name. Subscribers of a topic
// only see messages published to that exact name; topics have no hierarchy.
// Broadcasters are created on first use and dropped once they have no
// subscribers left.
type Topics[T any] struct {
	bufferSize int
	topics     map[string]*MemoryBroadcaster[T]
	closed     bool
	mu         sync.Mutex
}

// NewTopics creates an empty topic set whose subscribers buffer bufferSize messages.
func NewTopics[T any](bufferSize int) *Topics[T] {
	return &Topics[T]{
		bufferSize: bufferSize,
		topics:     make(map[string]*MemoryBroadcaster[T]),
	}
}

// Subscribe registers a subscriber on topic. Cancelling ctx or closing the
// subscriber removes it. After Close the returned subscriber is already closed.
func (t *Topics[T]) Subscribe(ctx context.Context, topic string) Subscriber[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		sub := newSubscriber[T](1)
		_ = sub.Close()
		return sub
	}

	b, ok := t.topics[topic]
	if !ok {
		b = NewMemoryBroadcaster[T](t.bufferSize)
		t.topics[topic] = b
	}
	return &topicSubscriber[T]{Subscriber: b.Subscribe(ctx), topics: t, topic: topic}
}

// Publish delivers msg to the current subscribers of topic. Publishing to a
// topic nobody listens to is not an error; the message is simply lost.
func (t *Topics[T]) Publish(ctx context.Context, topic string, msg Message[T]) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	b, ok := t.topics[topic]
	t.mu.Unlock()

	if !ok {
		return nil
	}
	// a concurrent release may have closed b; the topic is simply gone
	if err := b.Broadcast(ctx, msg); err != nil && !errors.Is(err, ErrClosed) {
		return err
	}
	t.release(topic)
	return nil
}

// Names returns the topics that currently have a broadcaster, sorted.
func (t *Topics[T]) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.topics))
	for name := range t.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every broadcaster and their subscribers.
func (t *Topics[T]) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	topics := t.topics
	t.topics = make(map[string]*MemoryBroadcaster[T])
	t.mu.Unlock()

	for _, b := range topics {
		_ = b.Close()
	}
	return nil
}

// release drops the topic's broadcaster when it has no subscribers left.
func (t *Topics[T]) release(topic string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.topics[topic]
	if !ok || b.Len() > 0 {
		return
	}
	delete(t.topics, topic)
	_ = b.Close()
}

type topicSubscriber[T any] struct {
	Subscriber[T]
	topics *Topics[T]
	topic  string
	once   sync.Once
}

func (s *topicSubscriber[T]) Close() error {
	err := s.Subscriber.Close()
	s.once.Do(func() { s.topics.release(s.topic) })
	return err
}
