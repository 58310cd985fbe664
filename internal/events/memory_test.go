package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-service/internal/logger"
	"blog-service/internal/model"
)

func collect(t *testing.T, sub *Subscription[model.PublishedEvent], n int) []model.PublishedEvent {
	t.Helper()
	got := make([]model.PublishedEvent, 0, n)
	for len(got) < n {
		select {
		case evt, ok := <-sub.C:
			require.True(t, ok, "subscription channel closed early")
			got = append(got, evt)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d of %d", len(got)+1, n)
		}
	}
	return got
}

func event(title string) model.PublishedEvent {
	return model.PublishedEvent{
		Post:       &model.Post{Title: title, Published: true},
		Author:     &model.User{ID: 1, Username: "alice"},
		OccurredAt: time.Now(),
	}
}

func TestInMemoryBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewInMemoryBus[model.PublishedEvent](logger.New("test"))

	assert.NotPanics(t, func() {
		bus.Publish(TopicPostPublished, event("nobody listening"))
	})

	// A subscriber joining afterwards must not see the earlier event.
	sub := bus.Subscribe(TopicPostPublished)
	select {
	case evt := <-sub.C:
		t.Fatalf("late subscriber received replayed event %q", evt.Post.Title)
	case <-time.After(50 * time.Millisecond):
	}
	bus.Unsubscribe(sub)
}

func TestInMemoryBus_BroadcastOrder(t *testing.T) {
	bus := NewInMemoryBus[model.PublishedEvent](logger.New("test"))

	first := bus.Subscribe(TopicPostPublished)
	second := bus.Subscribe(TopicPostPublished)
	assert.Equal(t, TopicPostPublished, first.Topic())

	titles := []string{"one", "two", "three"}
	for _, title := range titles {
		bus.Publish(TopicPostPublished, event(title))
	}

	for _, sub := range []*Subscription[model.PublishedEvent]{first, second} {
		got := collect(t, sub, len(titles))
		for i, title := range titles {
			assert.Equal(t, title, got[i].Post.Title)
		}
	}

	bus.Unsubscribe(first)
	bus.Unsubscribe(second)
	assert.Equal(t, 0, bus.Subscribers(TopicPostPublished))
}

func TestInMemoryBus_TopicsAreIsolated(t *testing.T) {
	bus := NewInMemoryBus[model.PublishedEvent](logger.New("test"))

	sub := bus.Subscribe("other.topic")
	bus.Publish(TopicPostPublished, event("wrong topic"))

	select {
	case evt := <-sub.C:
		t.Fatalf("subscriber of other topic received %q", evt.Post.Title)
	case <-time.After(50 * time.Millisecond):
	}
	bus.Unsubscribe(sub)
}

func TestInMemoryBus_UnsubscribeIsIdempotent(t *testing.T) {
	bus := NewInMemoryBus[model.PublishedEvent](logger.New("test"))

	sub := bus.Subscribe(TopicPostPublished)
	bus.Unsubscribe(sub)

	assert.NotPanics(t, func() { bus.Unsubscribe(sub) })
	assert.NotPanics(t, func() { bus.Unsubscribe(nil) })

	_, open := <-sub.C
	assert.False(t, open, "channel should be closed after unsubscribe")

	// The bus must keep working for everyone else.
	live := bus.Subscribe(TopicPostPublished)
	bus.Publish(TopicPostPublished, event("still alive"))
	got := collect(t, live, 1)
	assert.Equal(t, "still alive", got[0].Post.Title)
	bus.Unsubscribe(live)
}

func TestInMemoryBus_UnsubscribedReceivesNothingFurther(t *testing.T) {
	bus := NewInMemoryBus[model.PublishedEvent](logger.New("test"))

	sub := bus.Subscribe(TopicPostPublished)
	bus.Publish(TopicPostPublished, event("before"))
	got := collect(t, sub, 1)
	require.Equal(t, "before", got[0].Post.Title)

	bus.Unsubscribe(sub)
	bus.Publish(TopicPostPublished, event("after"))

	_, open := <-sub.C
	assert.False(t, open)
}

func TestInMemoryBus_ConcurrentSubscribePublish(t *testing.T) {
	bus := NewInMemoryBus[model.PublishedEvent](logger.New("test"))

	const publishers = 4
	const churners = 4
	const rounds = 100

	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				bus.Publish(TopicPostPublished, event("concurrent"))
			}
		}()
	}
	for i := 0; i < churners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				sub := bus.Subscribe(TopicPostPublished)
				bus.Unsubscribe(sub)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bus.Subscribers(TopicPostPublished))
}
