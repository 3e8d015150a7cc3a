package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/repositories"
	"weighbridge-backend/internal/templates"
)

// DeleteConfirmPrompt is the question a client must answer before a ticket is deleted
const DeleteConfirmPrompt = "هل أنت متأكد من حذف هذا السند؟"

var (
	ErrEntityNameRequired = errors.New("entity name is required")
	ErrTicketIDRequired   = errors.New("ticket id is required")
	ErrInvalidTicket      = errors.New("invalid ticket")
	ErrDeleteNotConfirmed = errors.New(DeleteConfirmPrompt)
)

// EntityStore is the entities collection
type EntityStore interface {
	Create(ctx context.Context, userID int, name string) (bool, error)
	List(ctx context.Context, userID int) ([]models.Entity, error)
}

// TicketStore is the tickets collection
type TicketStore interface {
	Upsert(ctx context.Context, userID int, t models.Ticket) error
	Get(ctx context.Context, userID int, id string) (*models.Ticket, error)
	ListByEntity(ctx context.Context, userID int, entity string) ([]models.Ticket, error)
	Delete(ctx context.Context, userID int, id string) error
}

type TicketService struct {
	Tickets  TicketStore
	Entities EntityStore
}

func NewTicketService(tickets TicketStore, entities EntityStore) *TicketService {
	return &TicketService{
		Tickets:  tickets,
		Entities: entities,
	}
}

// ListEntities returns the user's entities in key order
func (s *TicketService) ListEntities(ctx context.Context, userID int) ([]models.Entity, error) {
	return s.Entities.List(ctx, userID)
}

// CreateEntity stores a trimmed entity name. An existing name is left untouched and
// reported with created=false.
func (s *TicketService) CreateEntity(ctx context.Context, userID int, name string) (string, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, ErrEntityNameRequired
	}
	created, err := s.Entities.Create(ctx, userID, name)
	if err != nil {
		return "", false, fmt.Errorf("failed to create entity: %w", err)
	}
	return name, created, nil
}

// NewDraft starts an unsaved ticket for the entity
func (s *TicketService) NewDraft(entityName string) models.Ticket {
	return models.NewTicket(models.WithEntity(entityName))
}

// Save merge-upserts the ticket under its id
func (s *TicketService) Save(ctx context.Context, userID int, t models.Ticket) (models.Ticket, error) {
	if strings.TrimSpace(t.ID) == "" {
		return models.Ticket{}, ErrTicketIDRequired
	}
	t = t.Clone()
	t.Normalize()
	if err := s.Tickets.Upsert(ctx, userID, t); err != nil {
		return models.Ticket{}, fmt.Errorf("failed to save ticket: %w", err)
	}
	cache.InvalidateTicketPreviews(ctx, userID, t.ID)
	return t, nil
}

// SaveFields applies a JSON body to ticket id. Keys present in raw overwrite the stored
// ticket and the rest keep their stored values; an unknown id starts from the defaults.
func (s *TicketService) SaveFields(ctx context.Context, userID int, id string, raw []byte) (models.Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return models.Ticket{}, ErrTicketIDRequired
	}
	stored, err := s.Tickets.Get(ctx, userID, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		t, err := models.DecodeTicket(raw)
		if err != nil {
			return models.Ticket{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
		}
		t.ID = id
		return s.Save(ctx, userID, t)
	case err != nil:
		return models.Ticket{}, fmt.Errorf("failed to load ticket: %w", err)
	}

	t := stored.Clone()
	if err := json.Unmarshal(raw, &t); err != nil {
		return models.Ticket{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	t.ID = id
	return s.Save(ctx, userID, t)
}

func (s *TicketService) Get(ctx context.Context, userID int, id string) (*models.Ticket, error) {
	return s.Tickets.Get(ctx, userID, id)
}

// ListTickets returns the full tickets of one entity
func (s *TicketService) ListTickets(ctx context.Context, userID int, entity string) ([]models.Ticket, error) {
	return s.Tickets.ListByEntity(ctx, userID, entity)
}

// ListSummaries returns the list rows of one entity
func (s *TicketService) ListSummaries(ctx context.Context, userID int, entity string) ([]models.TicketSummary, error) {
	tickets, err := s.Tickets.ListByEntity(ctx, userID, entity)
	if err != nil {
		return nil, err
	}
	out := make([]models.TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, Summarize(t))
	}
	return out, nil
}

// Delete removes a ticket once the caller has confirmed
func (s *TicketService) Delete(ctx context.Context, userID int, id string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	if err := s.Tickets.Delete(ctx, userID, id); err != nil {
		return err
	}
	cache.InvalidateTicketPreviews(ctx, userID, id)
	return nil
}

// Summarize builds a list row
func Summarize(t models.Ticket) models.TicketSummary {
	customer := t.CustomerName
	if customer == "" {
		customer = "-"
	}
	return models.TicketSummary{
		ID:           t.ID,
		TicketNo:     t.TicketNo,
		VehicleNo:    t.VehicleNo,
		CustomerName: customer,
		Item:         t.Item,
		NetWeight:    t.NetWeight,
		NetDisplay:   templates.GroupedNumber(t.NetWeight),
		EntryDate:    t.EntryDate,
		EntryDisplay: templates.ListDate(t.EntryDate),
	}
}

// SelectEntity keeps current when it is still listed, otherwise picks the first
// entity, or none when the list is empty.
func SelectEntity(entities []models.Entity, current string) string {
	if len(entities) == 0 {
		return ""
	}
	for _, e := range entities {
		if e.Name == current {
			return current
		}
	}
	return entities[0].Name
}
