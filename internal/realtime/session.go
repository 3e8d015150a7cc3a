package realtime

import (
	"context"
	"sync"

	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/services"
)

// Message types pushed to a live client
const (
	MessageEntities = "entities"
	MessageTickets  = "tickets"
)

// Message is one snapshot pushed to a live client
type Message struct {
	Type     string                 `json:"type"`
	Selected string                 `json:"selected"`
	Entities []models.Entity        `json:"entities,omitempty"`
	Entity   string                 `json:"entity,omitempty"`
	Tickets  []models.TicketSummary `json:"tickets,omitempty"`
}

// SnapshotLoader reads the collections a session watches
type SnapshotLoader interface {
	ListEntities(ctx context.Context, userID int) ([]models.Entity, error)
	ListSummaries(ctx context.Context, userID int, entity string) ([]models.TicketSummary, error)
}

// Session keeps one client's view live: the entity list, and the tickets of the selected
// entity. Switching entity stops the old ticket watch before the new one starts.
type Session struct {
	hub    *Hub
	loader SnapshotLoader
	userID int
	send   func(Message)

	mu       sync.Mutex
	closed   bool
	entities []models.Entity
	selected string
	entSub   *Subscription
	tickSub  *Subscription
}

// NewSession builds a session; send must be safe for concurrent use
func NewSession(hub *Hub, loader SnapshotLoader, userID int, send func(Message)) *Session {
	return &Session{hub: hub, loader: loader, userID: userID, send: send}
}

func (s *Session) Start() {
	sub := Watch(s.hub, s.userID, CollectionEntities,
		func(ctx context.Context) ([]models.Entity, error) {
			return s.loader.ListEntities(ctx, s.userID)
		},
		s.onEntities,
	)
	s.mu.Lock()
	s.entSub = sub
	s.mu.Unlock()
}

// Selected is the entity whose tickets are being watched
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Session) onEntities(list []models.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.entities = list
	next := services.SelectEntity(list, s.selected)
	s.send(Message{Type: MessageEntities, Entities: list, Selected: next})
	if next != s.selected || s.tickSub == nil {
		s.switchTo(next)
	}
}

// Select switches to a listed entity. Unknown names are ignored.
func (s *Session) Select(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	for _, e := range s.entities {
		if e.Name == name {
			if name != s.selected {
				s.switchTo(name)
			}
			return true
		}
	}
	return false
}

// switchTo replaces the ticket watch; s.mu must be held
func (s *Session) switchTo(name string) {
	if s.tickSub != nil {
		s.tickSub.Stop()
		s.tickSub = nil
	}
	s.selected = name
	if name == "" {
		s.send(Message{Type: MessageTickets, Selected: ""})
		return
	}
	s.tickSub = Watch(s.hub, s.userID, CollectionTickets,
		func(ctx context.Context) ([]models.TicketSummary, error) {
			return s.loader.ListSummaries(ctx, s.userID, name)
		},
		func(rows []models.TicketSummary) {
			s.send(Message{Type: MessageTickets, Selected: name, Entity: name, Tickets: rows})
		},
	)
}

// Close stops all watches; nothing is sent after it returns
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	ent, tick := s.entSub, s.tickSub
	s.entSub, s.tickSub = nil, nil
	s.mu.Unlock()

	if ent != nil {
		ent.Stop()
	}
	if tick != nil {
		tick.Stop()
	}
}
