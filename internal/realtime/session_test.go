package realtime

import (
	"context"
	"sync"
	"testing"

	"weighbridge-backend/internal/models"
)

type memoryLoader struct {
	mu       sync.Mutex
	entities []models.Entity
	tickets  map[string][]models.TicketSummary
}

func (m *memoryLoader) ListEntities(context.Context, int) ([]models.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Entity(nil), m.entities...), nil
}

func (m *memoryLoader) ListSummaries(_ context.Context, _ int, entity string) ([]models.TicketSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.TicketSummary(nil), m.tickets[entity]...), nil
}

type inbox struct {
	mu   sync.Mutex
	msgs []Message
}

func (b *inbox) send(m Message) {
	b.mu.Lock()
	b.msgs = append(b.msgs, m)
	b.mu.Unlock()
}

func (b *inbox) last(kind string) (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.msgs) - 1; i >= 0; i-- {
		if b.msgs[i].Type == kind {
			return b.msgs[i], true
		}
	}
	return Message{}, false
}

func TestSessionSelectsFirstEntityAndFollowsDeletion(t *testing.T) {
	hub := NewHub()
	loader := &memoryLoader{
		entities: []models.Entity{{Name: "Acme"}, {Name: "Beta"}},
		tickets: map[string][]models.TicketSummary{
			"Acme": {{ID: "a1"}},
			"Beta": {{ID: "b1"}, {ID: "b2"}},
		},
	}
	box := &inbox{}
	s := NewSession(hub, loader, 1, box.send)
	s.Start()
	defer s.Close()

	waitFor(t, "Acme tickets", func() bool {
		m, ok := box.last(MessageTickets)
		return ok && m.Entity == "Acme" && len(m.Tickets) == 1
	})

	if !s.Select("Beta") {
		t.Fatal("Beta should be selectable")
	}
	if s.Select("Nope") {
		t.Error("unknown entity selected")
	}
	waitFor(t, "Beta tickets", func() bool {
		m, ok := box.last(MessageTickets)
		return ok && m.Entity == "Beta" && len(m.Tickets) == 2
	})

	// Beta disappears: the session falls back to the first remaining entity
	loader.mu.Lock()
	loader.entities = []models.Entity{{Name: "Acme"}}
	loader.mu.Unlock()
	hub.Publish(Change{UserID: 1, Collection: CollectionEntities})

	waitFor(t, "fallback to Acme", func() bool { return s.Selected() == "Acme" })
	waitFor(t, "Acme tickets again", func() bool {
		m, ok := box.last(MessageTickets)
		return ok && m.Entity == "Acme"
	})
}

func TestSessionWithoutEntities(t *testing.T) {
	hub := NewHub()
	box := &inbox{}
	s := NewSession(hub, &memoryLoader{}, 1, box.send)
	s.Start()

	waitFor(t, "empty selection", func() bool {
		m, ok := box.last(MessageTickets)
		return ok && m.Selected == ""
	})
	s.Close()
	if hub.Subscribers() != 0 {
		t.Errorf("%d subscriptions left after Close", hub.Subscribers())
	}
}

func TestSessionSwitchStopsPreviousWatch(t *testing.T) {
	hub := NewHub()
	loader := &memoryLoader{entities: []models.Entity{{Name: "Acme"}, {Name: "Beta"}}}
	box := &inbox{}
	s := NewSession(hub, loader, 1, box.send)
	s.Start()
	defer s.Close()

	waitFor(t, "ticket watch", func() bool { return hub.Subscribers() == 2 })
	s.Select("Beta")
	if n := hub.Subscribers(); n != 2 {
		t.Errorf("expected one entity and one ticket watch, got %d", n)
	}
}
