package notifications

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"blog-service/internal/logger"
	"blog-service/internal/model"
)

// Notification is a transient publish announcement held for a short while
// and then dropped.
type Notification struct {
	ID        uuid.UUID
	Message   string
	Timestamp time.Time
}

// Store consumes published-post events and keeps two views: a rolling list
// of notifications that expire after ttl, and a permanent list of posts in
// arrival order (newest first).
type Store struct {
	mu            sync.Mutex
	notifications []Notification
	posts         []model.PublishedEvent
	ttl           time.Duration
	done          chan struct{}
	wg            sync.WaitGroup
	log           *logger.Logger
}

func NewStore(ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		ttl:  ttl,
		done: make(chan struct{}),
		log:  log,
	}
}

// Start consumes events until the channel closes or Stop is called.
func (s *Store) Start(events <-chan model.PublishedEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.done:
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				s.add(evt)
			}
		}
	}()
}

// Stop halts consumption. Pending expiry timers keep running so already
// scheduled removals still happen.
func (s *Store) Stop() {
	close(s.done)
	s.wg.Wait()
}

func (s *Store) add(evt model.PublishedEvent) {
	notification := Notification{
		ID:        uuid.New(),
		Message:   fmt.Sprintf("New post: %s by %s", evt.Post.Title, evt.Author.Username),
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	s.notifications = append([]Notification{notification}, s.notifications...)
	s.posts = append([]model.PublishedEvent{evt}, s.posts...)
	s.mu.Unlock()

	s.log.Info("Notification received",
		slog.String("id", notification.ID.String()),
		slog.String("message", notification.Message))

	// The removal is keyed on the id captured here, so later arrivals
	// cannot shift which entry expires.
	id := notification.ID
	time.AfterFunc(s.ttl, func() {
		s.expire(id)
	})
}

func (s *Store) expire(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// Notifications returns the live notifications, newest first.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Posts returns every post seen so far, newest first. Posts never expire.
func (s *Store) Posts() []model.PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PublishedEvent, len(s.posts))
	copy(out, s.posts)
	return out
}

// Clear drops the current notifications. The posts list is kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}
