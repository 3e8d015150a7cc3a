package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weighbridge-backend/internal/handlers"
	"weighbridge-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	ticketHandler *handlers.TicketHandler,
	previewHandler *handlers.PreviewHandler,
	exportHandler *handlers.ExportHandler,
	liveHandler *handlers.LiveHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Entities
	api.HandleFunc("/entities", ticketHandler.ListEntities).Methods("GET")
	api.HandleFunc("/entities", ticketHandler.CreateEntity).Methods("POST")
	api.HandleFunc("/entities/{name}/tickets", ticketHandler.ListTickets).Methods("GET")
	api.HandleFunc("/entities/{name}/tickets.xlsx", exportHandler.EntityWorkbook).Methods("GET")
	api.HandleFunc("/entities/{name}/tickets.csv", exportHandler.EntityCSV).Methods("GET")
	api.HandleFunc("/entities/{name}/export.zip", exportHandler.EntityZip).Methods("GET")

	// Drafts (nothing is stored until PUT /tickets/{id})
	api.HandleFunc("/tickets/draft", ticketHandler.NewDraft).Methods("POST")
	api.HandleFunc("/tickets/draft/edit", ticketHandler.EditDraft).Methods("POST")
	api.HandleFunc("/tickets/draft/visibility", ticketHandler.SetDraftVisibility).Methods("POST")

	// Tickets
	api.HandleFunc("/tickets/{id}", ticketHandler.GetTicket).Methods("GET")
	api.HandleFunc("/tickets/{id}", ticketHandler.SaveTicket).Methods("PUT")
	api.HandleFunc("/tickets/{id}", ticketHandler.DeleteTicket).Methods("DELETE")
	api.HandleFunc("/tickets/{id}/preview", previewHandler.PreviewTicket).Methods("GET")
	api.HandleFunc("/tickets/{id}/export", exportHandler.ExportTicket).Methods("GET")

	// Templates and previews
	api.HandleFunc("/templates", previewHandler.Templates).Methods("GET")
	api.HandleFunc("/preview", previewHandler.PreviewDraft).Methods("POST")

	// Live snapshots; browsers cannot set headers on WebSocket requests
	live := r.PathPrefix("/ws").Subrouter()
	live.Use(authMiddleware.AuthenticateQuery)
	live.HandleFunc("", liveHandler.Serve).Methods("GET")

	// Health
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r
}
