package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"weighbridge-backend/internal/middleware"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/repositories"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/pkg/utils"
)

type TicketHandler struct {
	Service *services.TicketService
}

func NewTicketHandler(s *services.TicketService) *TicketHandler {
	return &TicketHandler{Service: s}
}

type createEntityResponse struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

type draftRequest struct {
	EntityName string `json:"entityName"`
}

// draftEditRequest carries the draft being edited; missing ticket fields take their defaults
type draftEditRequest struct {
	Ticket json.RawMessage `json:"ticket"`
	Field  string          `json:"field"`
	Value  string          `json:"value"`
}

type draftVisibilityRequest struct {
	Ticket  json.RawMessage `json:"ticket"`
	Field   string          `json:"field"`
	Visible bool            `json:"visible"`
}

type deletePromptResponse struct {
	Message string `json:"message"`
}

func currentUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return userID, ok
}

func decodeDraft(raw json.RawMessage) (models.Ticket, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return models.NewTicket(), nil
	}
	return models.DecodeTicket(raw)
}

// ListEntities returns the user's entities ordered by name
func (h *TicketHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	entities, err := h.Service.ListEntities(r.Context(), userID)
	if err != nil {
		log.Printf("[Tickets] List entities failed: %v", err)
		http.Error(w, "Failed to list entities", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, entities)
}

// CreateEntity adds an entity; an existing name is left untouched
func (h *TicketHandler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.CreateEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	name, created, err := h.Service.CreateEntity(r.Context(), userID, req.Name)
	if errors.Is(err, services.ErrEntityNameRequired) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[Tickets] Create entity failed: %v", err)
		http.Error(w, "Failed to create entity", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.JSON(w, status, createEntityResponse{Name: name, Created: created})
}

// ListTickets returns the list rows of one entity
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	rows, err := h.Service.ListSummaries(r.Context(), userID, mux.Vars(r)["name"])
	if err != nil {
		log.Printf("[Tickets] List tickets failed: %v", err)
		http.Error(w, "Failed to list tickets", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}

// NewDraft starts a ticket for an entity with the default values
func (h *TicketHandler) NewDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusOK, h.Service.NewDraft(req.EntityName))
}

// EditDraft applies one field edit and returns the recomputed draft
func (h *TicketHandler) EditDraft(w http.ResponseWriter, r *http.Request) {
	var req draftEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	draft, err := decodeDraft(req.Ticket)
	if err != nil {
		http.Error(w, "Invalid ticket", http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusOK, services.ApplyEdit(draft, req.Field, req.Value))
}

// SetDraftVisibility shows or hides one field of the draft
func (h *TicketHandler) SetDraftVisibility(w http.ResponseWriter, r *http.Request) {
	var req draftVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !models.IsVisibilityField(req.Field) {
		http.Error(w, "Unknown field", http.StatusBadRequest)
		return
	}
	draft, err := decodeDraft(req.Ticket)
	if err != nil {
		http.Error(w, "Invalid ticket", http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusOK, services.ApplyVisibility(draft, req.Field, req.Visible))
}

// SaveTicket merges the body into the stored ticket; the id in the path wins
func (h *TicketHandler) SaveTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]

	saved, err := h.Service.SaveFields(r.Context(), userID, id, raw)
	if errors.Is(err, services.ErrTicketIDRequired) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, services.ErrInvalidTicket) {
		http.Error(w, "Invalid ticket", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[Tickets] Save %s failed: %v", id, err)
		http.Error(w, "Failed to save ticket", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, saved)
}

func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	t, err := h.Service.Get(r.Context(), userID, mux.Vars(r)["id"])
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[Tickets] Get failed: %v", err)
		http.Error(w, "Failed to load ticket", http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

// DeleteTicket needs ?confirm=true; without it the client gets the confirmation prompt
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"

	err := h.Service.Delete(r.Context(), userID, mux.Vars(r)["id"], confirmed)
	switch {
	case errors.Is(err, services.ErrDeleteNotConfirmed):
		utils.JSON(w, http.StatusPreconditionRequired, deletePromptResponse{Message: services.DeleteConfirmPrompt})
	case errors.Is(err, repositories.ErrNotFound):
		http.Error(w, "Ticket not found", http.StatusNotFound)
	case err != nil:
		log.Printf("[Tickets] Delete failed: %v", err)
		http.Error(w, "Failed to delete ticket", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
