package handlers

import (
	"errors"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"weighbridge-backend/internal/repositories"
	"weighbridge-backend/internal/services"
	"weighbridge-backend/pkg/utils"
)

type ExportHandler struct {
	Exports *services.ExportService
	Reports *services.ReportService
	Tickets *services.TicketService
}

func NewExportHandler(exports *services.ExportService, reports *services.ReportService, tickets *services.TicketService) *ExportHandler {
	return &ExportHandler{Exports: exports, Reports: reports, Tickets: tickets}
}

type exportErrorResponse struct {
	Message string `json:"message"`
}

func writeDownload(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeExportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrExportUnavailable):
		utils.JSON(w, http.StatusServiceUnavailable, exportErrorResponse{Message: services.ExportUnavailableMessage})
	case errors.Is(err, services.ErrUnsupportedFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Export failed", http.StatusBadGateway)
	}
}

// ExportTicket downloads one ticket as ?format=jpg or pdf (default jpg)
func (h *ExportHandler) ExportTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(services.FormatJPG)
	}
	format, err := services.ParseExportFormat(formatParam)
	if err != nil {
		writeExportError(w, err)
		return
	}
	if !h.Exports.Available(format) {
		writeExportError(w, services.ErrExportUnavailable)
		return
	}

	t, err := h.Tickets.Get(r.Context(), userID, mux.Vars(r)["id"])
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Ticket not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[Export] Load ticket failed: %v", err)
		http.Error(w, "Failed to load ticket", http.StatusInternalServerError)
		return
	}

	file, err := h.Exports.Export(r.Context(), userID, *t, format)
	if err != nil {
		writeExportError(w, err)
		return
	}
	writeDownload(w, file.Filename, file.ContentType, file.Data)
}

// EntityWorkbook downloads an entity's ticket list as XLSX
func (h *ExportHandler) EntityWorkbook(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	entity := mux.Vars(r)["name"]
	data, err := h.Reports.EntityWorkbook(r.Context(), userID, entity)
	if err != nil {
		log.Printf("[Export] Workbook for %s failed: %v", entity, err)
		http.Error(w, "Failed to build workbook", http.StatusInternalServerError)
		return
	}
	writeDownload(w, services.ReportFilename(entity, "xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// EntityCSV downloads an entity's ticket list as CSV
func (h *ExportHandler) EntityCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	entity := mux.Vars(r)["name"]
	data, err := h.Reports.EntityCSV(r.Context(), userID, entity)
	if err != nil {
		log.Printf("[Export] CSV for %s failed: %v", entity, err)
		http.Error(w, "Failed to build CSV", http.StatusInternalServerError)
		return
	}
	writeDownload(w, services.ReportFilename(entity, "csv"), "text/csv; charset=utf-8", data)
}

// EntityZip downloads every ticket of an entity exported as ?format=jpg or pdf
func (h *ExportHandler) EntityZip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(services.FormatPDF)
	}
	format, err := services.ParseExportFormat(formatParam)
	if err != nil {
		writeExportError(w, err)
		return
	}

	entity := mux.Vars(r)["name"]
	data, err := h.Reports.ExportEntityZip(r.Context(), userID, entity, format)
	if err != nil {
		if !errors.Is(err, services.ErrExportUnavailable) {
			log.Printf("[Export] Zip for %s failed: %v", entity, err)
		}
		writeExportError(w, err)
		return
	}
	writeDownload(w, services.ReportFilename(entity, "zip"), "application/zip", data)
}
