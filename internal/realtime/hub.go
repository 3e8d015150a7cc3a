package realtime

import (
	"context"
	"log"
	"sync"
)

// Store collections that publish changes
const (
	CollectionEntities = "entities"
	CollectionTickets  = "tickets"
)

// Change says that a user's collection was written
type Change struct {
	UserID     int
	Collection string
}

type watchKey struct {
	userID     int
	collection string
}

// Hub fans store changes out to subscriptions
type Hub struct {
	mu   sync.Mutex
	subs map[watchKey]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[watchKey]map[*Subscription]struct{})}
}

// Publish wakes every subscription watching the changed collection. A subscription that is
// still loading picks the change up once it is done; bursts collapse into one reload.
func (h *Hub) Publish(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[watchKey{c.UserID, c.Collection}] {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
}

// Subscribers counts live subscriptions
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, set := range h.subs {
		n += len(set)
	}
	return n
}

func (h *Hub) add(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[s.key]
	if set == nil {
		set = make(map[*Subscription]struct{})
		h.subs[s.key] = set
	}
	set[s] = struct{}{}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set := h.subs[s.key]; set != nil {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.key)
		}
	}
}

// Subscription is a running watch. Stop it exactly when the watched key is no longer wanted.
type Subscription struct {
	hub    *Hub
	key    watchKey
	notify chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop cancels the watch and returns after its last delivery finished.
// It must not be called from the subscription's own callback.
func (s *Subscription) Stop() {
	s.once.Do(func() {
		s.hub.remove(s)
		s.cancel()
	})
	<-s.done
}

// Watch loads a snapshot right away and again after every change to the collection,
// passing each one to deliver. Load errors are logged and the previous snapshot stands.
func Watch[T any](h *Hub, userID int, collection string, load func(context.Context) (T, error), deliver func(T)) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Subscription{
		hub:    h,
		key:    watchKey{userID, collection},
		notify: make(chan struct{}, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	h.add(s)

	refresh := func() {
		v, err := load(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("[Realtime] %s snapshot for user %d failed: %v", collection, userID, err)
			return
		}
		deliver(v)
	}

	go func() {
		defer close(s.done)
		refresh()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.notify:
				refresh()
			}
		}
	}()
	return s
}
