package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/metrics"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/templates"
	"weighbridge-backend/internal/timeutil"
)

// PreviewService renders tickets for on-screen preview. Each user has a fault boundary of
// their own so a broken template only affects that user's current preview.
type PreviewService struct {
	Registry *templates.Registry
	Now      func() time.Time

	mu         sync.Mutex
	boundaries map[int]*templates.Boundary
}

func NewPreviewService(registry *templates.Registry) *PreviewService {
	return &PreviewService{
		Registry:   registry,
		Now:        timeutil.Now,
		boundaries: make(map[int]*templates.Boundary),
	}
}

type cachedPreview struct {
	Title  string `json:"title"`
	Copies int    `json:"copies"`
	HTML   []byte `json:"html"`
}

// Templates lists the selectable templates
func (s *PreviewService) Templates() []models.TemplateInfo {
	return s.Registry.Templates()
}

// Render draws t with templateID (the ticket's own template when empty). It never fails:
// render errors come back as the fault notice document.
func (s *PreviewService) Render(ctx context.Context, userID int, t models.Ticket, templateID models.TemplateID) *templates.Document {
	if templateID == "" {
		templateID = t.Template
	}
	resolved := templateID.Resolve()

	boundary := s.boundary(userID)
	// a faulted pair keeps showing the notice, so the cache is not consulted for it
	faulted := boundary.Enter(t.ID, templateID)

	// primary1 stamps the print date, so its output changes every day
	cacheable := !faulted && resolved != models.TemplatePrimary1
	var key string
	if cacheable {
		if raw, err := json.Marshal(t); err == nil {
			key = cache.PreviewKey(userID, t.ID, string(resolved), cache.ContentHash(raw))
			if data, ok := cache.GetCached(ctx, key); ok {
				var hit cachedPreview
				if json.Unmarshal(data, &hit) == nil {
					return &templates.Document{TemplateID: resolved, Title: hit.Title, HTML: hit.HTML, Copies: hit.Copies}
				}
			}
		}
	}

	doc := boundary.Render(t, templateID, templates.Env{Now: s.Now()})
	metrics.TemplateRendersTotal.WithLabelValues(string(resolved)).Inc()
	if doc.Fault {
		metrics.TemplateFaultsTotal.WithLabelValues(string(resolved)).Inc()
		return doc
	}

	if key != "" {
		if data, err := json.Marshal(cachedPreview{Title: doc.Title, Copies: doc.Copies, HTML: doc.HTML}); err == nil {
			cache.SetCached(ctx, key, data, cache.PreviewTTL)
		}
	}
	return doc
}

// Forget drops the user's boundary, e.g. on sign-out
func (s *PreviewService) Forget(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boundaries, userID)
}

func (s *PreviewService) boundary(userID int) *templates.Boundary {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boundaries[userID]
	if !ok {
		b = templates.NewBoundary(s.Registry)
		s.boundaries[userID] = b
	}
	return b
}
