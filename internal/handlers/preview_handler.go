package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/repositories"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/internal/templates"
	"weighbridge-backend/pkg/utils"
)

type PreviewHandler struct {
	Previews *services.PreviewService
	Tickets  *services.TicketService
}

func NewPreviewHandler(previews *services.PreviewService, tickets *services.TicketService) *PreviewHandler {
	return &PreviewHandler{Previews: previews, Tickets: tickets}
}

type previewRequest struct {
	Ticket   json.RawMessage   `json:"ticket"`
	Template models.TemplateID `json:"template"`
}

// Templates lists the selectable templates with their display names
func (h *PreviewHandler) Templates(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Previews.Templates())
}

// PreviewDraft renders an unsaved ticket
func (h *PreviewHandler) PreviewDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	draft, err := decodeDraft(req.Ticket)
	if err != nil {
		http.Error(w, "Invalid ticket", http.StatusBadRequest)
		return
	}
	writeDocument(w, h.Previews.Render(r.Context(), userID, draft, req.Template))
}

// PreviewTicket renders a saved ticket, optionally with another template
func (h *PreviewHandler) PreviewTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	t, err := h.Tickets.Get(r.Context(), userID, mux.Vars(r)["id"])
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[Preview] Load ticket failed: %v", err)
		http.Error(w, "Failed to load ticket", http.StatusInternalServerError)
		return
	}
	templateID := models.TemplateID(r.URL.Query().Get("template"))
	writeDocument(w, h.Previews.Render(r.Context(), userID, *t, templateID))
}

// writeDocument sends a rendered ticket. A fault notice is still a 200: the preview area shows it.
func writeDocument(w http.ResponseWriter, doc *templates.Document) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Template-Id", string(doc.TemplateID))
	w.Header().Set("X-Render-Fault", strconv.FormatBool(doc.Fault))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.HTML)
}
