package templates

import (
	"time"

	"weighbridge-backend/internal/models"
)

// Env carries the inputs a render may read besides the ticket
type Env struct {
	// Now stamps the print date on layouts that show one. Zero leaves it blank.
	Now time.Time
}

// Document is a rendered, self-contained HTML page
type Document struct {
	TemplateID models.TemplateID `json:"templateId"`
	Title      string            `json:"title"`
	HTML       []byte            `json:"-"`
	Copies     int               `json:"copies"`
	// Fault marks the notice produced by a Boundary in place of a failed render
	Fault bool `json:"fault"`
}

// Renderer turns a ticket into a document. Implementations must not modify the ticket
// and must return identical output for identical input.
type Renderer interface {
	Render(t models.Ticket, env Env) (*Document, error)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(t models.Ticket, env Env) (*Document, error)

func (f RendererFunc) Render(t models.Ticket, env Env) (*Document, error) {
	return f(t, env)
}
