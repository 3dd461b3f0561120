package notification

import (
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/realtime"
)

const (
	reasonOtherStore = "other_store"
	reasonNotCreated = "not_created"
	reasonBeforeSub  = "before_subscription"
	reasonDuplicate  = "duplicate"
)

// Subscription tracks new orders of one store from the moment it was opened.
type Subscription struct {
	ID        string
	StoreID   string
	StartedAt time.Time

	mu     sync.Mutex
	seen   map[string]struct{}
	count  int
	alerts chan Alert
	closed bool
}

func newSubscription(id, storeID string, startedAt time.Time, buffer int) *Subscription {
	return &Subscription{
		ID:        id,
		StoreID:   storeID,
		StartedAt: startedAt,
		seen:      map[string]struct{}{},
		alerts:    make(chan Alert, buffer),
	}
}

// accept reports whether e is a new order for this subscription and records it.
func (s *Subscription) accept(e *realtime.OrderEvent) (bool, string) {
	if e.StoreID != s.StoreID {
		return false, reasonOtherStore
	}
	if e.EventType != realtime.OrderCreated {
		return false, reasonNotCreated
	}
	if e.Order.CreatedAt.Before(s.StartedAt) {
		return false, reasonBeforeSub
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[e.Order.ID]; ok {
		return false, reasonDuplicate
	}
	s.seen[e.Order.ID] = struct{}{}
	s.count++
	return true, ""
}

func (s *Subscription) push(a Alert) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.alerts <- a:
		return true
	default:
		return false
	}
}

// NewOrderCount is the number of alerts since the last Acknowledge.
func (s *Subscription) NewOrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Acknowledge clears the counter. Seen orders stay seen.
func (s *Subscription) Acknowledge() {
	s.mu.Lock()
	s.count = 0
	s.mu.Unlock()
}

// Alerts is closed when the subscription is closed.
func (s *Subscription) Alerts() <-chan Alert {
	return s.alerts
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.alerts)
	}
}
