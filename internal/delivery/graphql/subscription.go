package delivery_graphql

import (
	"context"
	"log/slog"

	"blog-service/internal/events"
	"blog-service/internal/model"
)

// BlogPostPublished streams one message per post that becomes published.
// No authentication is required to subscribe.
//
// Connection lifecycle: subscribing registers a channel with the bus;
// client disconnect, explicit unsubscribe and server shutdown all cancel
// ctx, and the deferred Unsubscribe releases the registration exactly once
// (the bus makes a second call a no-op).
func (r *RootResolver) BlogPostPublished(ctx context.Context) (<-chan *blogPostResolver, error) {
	sub := r.bus.Subscribe(events.TopicPostPublished)
	r.metrics.IncrementSubscriptions(sub.Topic())
	r.log.Info("Subscription opened", slog.String("topic", sub.Topic()))

	out := make(chan *blogPostResolver)
	go func() {
		defer close(out)
		defer r.bus.Unsubscribe(sub)
		defer r.metrics.DecrementSubscriptions(sub.Topic())
		defer r.log.Info("Subscription closed", slog.String("topic", sub.Topic()))

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-sub.C:
				if !ok {
					return
				}
				resolver := newBlogPostResolver(&model.PostDetailed{
					Post:   evt.Post,
					Author: evt.Author,
				})
				select {
				case out <- resolver:
					r.metrics.IncrementEventsDelivered(sub.Topic())
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
