package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"

	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/timeutil"
)

// List columns, in the order the ticket list shows them
var reportHeaders = []string{"رقم السند", "رقم السيارة", "العميل", "الوزن الصافي (كجم)", "تاريخ الدخول"}

// ReportService builds per-entity downloads: the ticket list as a spreadsheet and a ZIP of
// every ticket exported through the export pipeline.
type ReportService struct {
	Tickets *TicketService
	Exports *ExportService
}

func NewReportService(tickets *TicketService, exports *ExportService) *ReportService {
	return &ReportService{Tickets: tickets, Exports: exports}
}

// ReportFilename names an entity download, e.g. "سندات-<entity>-20260101.xlsx"
func ReportFilename(entity, ext string) string {
	return fmt.Sprintf("سندات-%s-%s.%s", sanitizeFilename(entity), timeutil.Now().Format("20060102"), ext)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

// sheetName trims an entity name to what a workbook accepts
func sheetName(entity string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return -1
		}
		return r
	}, strings.Trim(entity, "'"))
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		name = "Tickets"
	}
	return name
}

// TicketsWorkbook renders list rows as a right-to-left XLSX sheet
func TicketsWorkbook(entity string, rows []models.TicketSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(entity)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	rtl := true
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, fmt.Errorf("failed to set sheet view: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E2E8F0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	weightFmt := "#,##0.###"
	weightStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &weightFmt})

	for col, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "E", 20)

	for i, r := range rows {
		row := i + 2
		values := []any{r.TicketNo, r.VehicleNo, r.CustomerName, r.NetWeight, r.EntryDisplay}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(4, row)
		f.SetCellStyle(sheet, cell, cell, weightStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// TicketsCSV renders list rows as CSV
func TicketsCSV(rows []models.TicketSummary) ([]byte, error) {
	var buf bytes.Buffer
	// UTF-8 BOM
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)

	w.Write(reportHeaders)
	for _, r := range rows {
		w.Write([]string{r.TicketNo, r.VehicleNo, r.CustomerName, r.NetDisplay, r.EntryDisplay})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EntityWorkbook loads an entity's tickets and builds its spreadsheet
func (s *ReportService) EntityWorkbook(ctx context.Context, userID int, entity string) ([]byte, error) {
	rows, err := s.Tickets.ListSummaries(ctx, userID, entity)
	if err != nil {
		return nil, err
	}
	return TicketsWorkbook(entity, rows)
}

// EntityCSV loads an entity's tickets and builds its CSV
func (s *ReportService) EntityCSV(ctx context.Context, userID int, entity string) ([]byte, error) {
	rows, err := s.Tickets.ListSummaries(ctx, userID, entity)
	if err != nil {
		return nil, err
	}
	return TicketsCSV(rows)
}

// ExportEntityZip exports every ticket of an entity one after another. Tickets that fail
// are logged and left out; unavailable backends fail the whole request.
func (s *ReportService) ExportEntityZip(ctx context.Context, userID int, entity string, format ExportFormat) ([]byte, error) {
	if !s.Exports.Available(format) {
		return nil, ErrExportUnavailable
	}
	tickets, err := s.Tickets.ListTickets(ctx, userID, entity)
	if err != nil {
		return nil, err
	}

	files := make([]*ExportFile, 0, len(tickets))
	for _, t := range tickets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file, err := s.Exports.Export(ctx, userID, t, format)
		if err != nil {
			log.Printf("[Export] skipping ticket %s in %s zip: %v", t.ID, entity, err)
			continue
		}
		files = append(files, file)
	}
	return CreateTicketZip(files)
}

// CreateTicketZip packs exported files, numbering repeated ticket numbers
func CreateTicketZip(files []*ExportFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]int)
	for _, file := range files {
		name := file.Filename
		seen[name]++
		if n := seen[name]; n > 1 {
			ext := path.Ext(name)
			name = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
		}
		fw, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := fw.Write(file.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
