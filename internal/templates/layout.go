package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"weighbridge-backend/internal/models"
)

//go:embed layouts/*.html
var layoutFS embed.FS

// layout renders one embedded HTML layout from a view model built off the ticket
type layout struct {
	id     models.TemplateID
	tmpl   *template.Template
	copies int
	view   func(t models.Ticket, env Env) any
}

type pageData struct {
	Title  string
	Copies []struct{}
	View   any
}

func newLayout(id models.TemplateID, file string, copies int, view func(models.Ticket, Env) any) *layout {
	tmpl := template.Must(template.ParseFS(layoutFS, "layouts/page.html", "layouts/"+file))
	return &layout{id: id, tmpl: tmpl, copies: copies, view: view}
}

func (l *layout) Render(t models.Ticket, env Env) (*Document, error) {
	data := pageData{
		Title:  documentTitle(t),
		Copies: make([]struct{}, l.copies),
		View:   l.view(t, env),
	}

	var buf bytes.Buffer
	if err := l.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", l.id, err)
	}

	return &Document{
		TemplateID: l.id,
		Title:      data.Title,
		HTML:       buf.Bytes(),
		Copies:     l.copies,
	}, nil
}

// documentTitle names the printed document; a hidden ticket number is left out
func documentTitle(t models.Ticket) string {
	if !t.IsVisible(models.FieldTicketNo) {
		return "سند"
	}
	return "سند-" + t.TicketNo
}

// fields projects ticket values through the visibility overlay
type fields struct {
	t models.Ticket
}

func (f fields) text(k models.FieldKey, v string) string {
	if !f.t.IsVisible(k) {
		return NBSP
	}
	return v
}

func (f fields) number(k models.FieldKey, v float64, format func(float64) string) string {
	if !f.t.IsVisible(k) {
		return NBSP
	}
	return format(v)
}

func (f fields) date(k models.FieldKey, v string, format func(time.Time) string) string {
	if !f.t.IsVisible(k) {
		return NBSP
	}
	return dateFormat(v, format)
}

func (f fields) shown(k models.FieldKey) bool {
	return f.t.IsVisible(k)
}

// Shared view pieces

type header struct {
	Title    string
	Subtitle string
}

func (f fields) header() header {
	return header{
		Title:    f.text(models.FieldWeighbridgeName, f.t.WeighbridgeName),
		Subtitle: f.text(models.FieldCompanyName, f.t.CompanyName),
	}
}

type row struct {
	Label string
	Value string
}

type weightCell struct {
	Label     string
	Value     string
	Highlight bool
}

func (f fields) weightCells(format func(float64) string) []weightCell {
	return []weightCell{
		{Label: "الوزن الفارغ", Value: f.number(models.FieldTareWeight, f.t.TareWeight, format)},
		{Label: "الوزن الإجمالي", Value: f.number(models.FieldGrossWeight, f.t.GrossWeight, format)},
		{Label: "الوزن الصافي", Value: f.number(models.FieldNetWeight, f.t.NetWeight, format), Highlight: f.shown(models.FieldNetWeight)},
	}
}
