package templates

import (
	"fmt"

	"weighbridge-backend/internal/models"
)

// Registry maps every catalog template to its renderer. Unknown ids fall back to
// models.DefaultTemplate.
type Registry struct {
	renderers map[models.TemplateID]Renderer
}

// RegistryOption customizes a registry at construction time
type RegistryOption func(*Registry)

// WithRenderer replaces the renderer for a catalog id. Ids outside the catalog are ignored.
func WithRenderer(id models.TemplateID, r Renderer) RegistryOption {
	return func(reg *Registry) {
		if id.Known() {
			reg.renderers[id] = r
		}
	}
}

// NewRegistry builds the fixed template table
func NewRegistry(opts ...RegistryOption) *Registry {
	reg := &Registry{
		renderers: map[models.TemplateID]Renderer{
			models.TemplateClassic:   newLayout(models.TemplateClassic, "classic.html", 1, classicRender),
			models.TemplateModern:    newLayout(models.TemplateModern, "modern.html", 1, modernRender),
			models.TemplateGrid:      newLayout(models.TemplateGrid, "grid.html", 1, gridRender),
			models.TemplateOfficial:  newLayout(models.TemplateOfficial, "official.html", 1, officialRender),
			models.TemplateOfficial2: newLayout(models.TemplateOfficial2, "official2.html", 2, official2Render),
			models.TemplateOfficial3: newLayout(models.TemplateOfficial3, "official3.html", 2, official3Render),
			models.TemplatePrimary1:  newLayout(models.TemplatePrimary1, "primary1.html", 1, primary1Render),
			models.TemplatePrimary2:  newLayout(models.TemplatePrimary2, "primary2.html", 2, primary2Render),
		},
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Lookup returns the renderer for id together with the id actually used
func (r *Registry) Lookup(id models.TemplateID) (models.TemplateID, Renderer) {
	resolved := id.Resolve()
	return resolved, r.renderers[resolved]
}

// Render draws t with the template id, or with the ticket's own template when id is empty
func (r *Registry) Render(t models.Ticket, id models.TemplateID, env Env) (*Document, error) {
	if id == "" {
		id = t.Template
	}
	resolved, renderer := r.Lookup(id)
	if renderer == nil {
		return nil, fmt.Errorf("no renderer registered for %s", resolved)
	}
	return renderer.Render(t, env)
}

// Templates lists the catalog in picker order
func (r *Registry) Templates() []models.TemplateInfo {
	out := make([]models.TemplateInfo, len(models.TemplateCatalog))
	copy(out, models.TemplateCatalog)
	return out
}
