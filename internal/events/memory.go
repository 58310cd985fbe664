package events

import (
	"log/slog"
	"sync"

	"blog-service/internal/logger"
)

// subscriberBuffer bounds how far a subscriber may fall behind before
// publishes to it are dropped.
const subscriberBuffer = 256

type InMemoryBus[T any] struct {
	log    *logger.Logger
	mu     sync.RWMutex
	topics map[string]map[*Subscription[T]]struct{}
}

func NewInMemoryBus[T any](log *logger.Logger) *InMemoryBus[T] {
	return &InMemoryBus[T]{
		log:    log,
		topics: make(map[string]map[*Subscription[T]]struct{}),
	}
}

// Publish delivers payload to every subscription currently registered under
// topic. The registry read lock is held for the whole fan-out, so a
// subscription being cancelled concurrently either receives the payload or
// is already gone; its channel is never closed mid-send.
func (b *InMemoryBus[T]) Publish(topic string, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subs := b.topics[topic]
	if len(subs) == 0 {
		b.log.Debug("Publish with no subscribers", slog.String("topic", topic))
		return
	}

	for sub := range subs {
		select {
		case sub.ch <- payload:
		default:
			b.log.Warn("Subscriber buffer full, dropping event", slog.String("topic", topic))
		}
	}
}

func (b *InMemoryBus[T]) Subscribe(topic string) *Subscription[T] {
	ch := make(chan T, subscriberBuffer)
	sub := &Subscription[T]{C: ch, topic: topic, ch: ch}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*Subscription[T]]struct{})
	}
	b.topics[topic][sub] = struct{}{}

	b.log.Debug("Subscriber registered",
		slog.String("topic", topic),
		slog.Int("subscribers", len(b.topics[topic])))
	return sub
}

// Unsubscribe deregisters sub and closes its channel. Registry membership is
// the idempotency guard: a second call finds nothing to remove and returns.
func (b *InMemoryBus[T]) Unsubscribe(sub *Subscription[T]) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[sub.topic]
	if !ok {
		return
	}
	if _, registered := subs[sub]; !registered {
		return
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, sub.topic)
	}
	close(sub.ch)

	b.log.Debug("Subscriber deregistered", slog.String("topic", sub.topic))
}

// Subscribers reports how many subscriptions are registered under topic.
func (b *InMemoryBus[T]) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
