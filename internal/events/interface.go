package events

// TopicPostPublished carries a model.PublishedEvent for every post that
// becomes published.
const TopicPostPublished = "post.published"

// Subscription is a per-subscriber delivery handle. Events arrive on C in
// publish order until the subscription is cancelled, at which point C is
// closed.
type Subscription[T any] struct {
	C <-chan T

	topic string
	ch    chan T
}

// Topic returns the topic this subscription is registered under.
func (s *Subscription[T]) Topic() string {
	return s.topic
}

// Bus is an in-process broadcast primitive keyed by topic name. Every
// subscriber of a topic receives every payload published to it after the
// subscription was registered; there is no replay and no persistence.
type Bus[T any] interface {
	// Publish fans payload out to all current subscribers of topic.
	// Publishing with no subscribers is a no-op. Publish never blocks on a
	// slow consumer and never returns an error; undeliverable payloads are
	// dropped and logged.
	Publish(topic string, payload T)

	// Subscribe registers a new independent subscription under topic.
	Subscribe(topic string) *Subscription[T]

	// Unsubscribe deregisters sub and closes its channel. Calling it again
	// for the same subscription is a no-op.
	Unsubscribe(sub *Subscription[T])
}
