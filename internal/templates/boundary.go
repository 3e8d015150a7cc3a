package templates

import (
	"fmt"
	"log"
	"sync"

	"weighbridge-backend/internal/models"
)

// FaultTitle is the heading of the notice shown in place of a failed render
const FaultTitle = "خطأ!"

// FaultMessage follows FaultTitle in the notice
const FaultMessage = " حدث خطأ أثناء عرض المعاينة."

var notice = newLayout("", "notice.html", 1, func(models.Ticket, Env) any { return nil })

type boundaryKey struct {
	ticketID   string
	templateID models.TemplateID
}

// Boundary isolates render failures. A failing render (error or panic) yields a notice
// document instead. The boundary keeps answering with the notice while the same
// (ticket, template) pair is requested and retries once the pair changes.
type Boundary struct {
	mu       sync.Mutex
	registry *Registry
	key      boundaryKey
	faulted  bool
}

func NewBoundary(registry *Registry) *Boundary {
	return &Boundary{registry: registry}
}

// Render never fails. Document.Fault reports whether the notice was returned.
func (b *Boundary) Render(t models.Ticket, id models.TemplateID, env Env) *Document {
	if id == "" {
		id = t.Template
	}
	key := boundaryKey{ticketID: t.ID, templateID: id}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.enter(key) {
		return faultDocument(id)
	}

	doc, err := b.safeRender(t, id, env)
	if err != nil {
		log.Printf("[Templates] Render of %s for ticket %s failed: %v", id, t.ID, err)
		b.faulted = true
		return faultDocument(id)
	}
	return doc
}

// Enter records the (ticket, template) pair as the current one without rendering,
// clearing the fault when the pair changed. It reports whether the pair is faulted.
// Callers serving a document from elsewhere (a cache) must call it so pair changes are seen.
func (b *Boundary) Enter(ticketID string, id models.TemplateID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enter(boundaryKey{ticketID: ticketID, templateID: id})
}

func (b *Boundary) enter(key boundaryKey) bool {
	if key != b.key {
		b.key = key
		b.faulted = false
	}
	return b.faulted
}

// Faulted reports whether the current pair is in the fault state
func (b *Boundary) Faulted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.faulted
}

func (b *Boundary) safeRender(t models.Ticket, id models.TemplateID, env Env) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return b.registry.Render(t, id, env)
}

func faultDocument(id models.TemplateID) *Document {
	doc, err := notice.Render(models.Ticket{}, Env{})
	if err != nil {
		// notice.html is static; only a broken build gets here
		doc = &Document{HTML: []byte(FaultTitle + FaultMessage), Copies: 1}
	}
	doc.TemplateID = id
	doc.Title = FaultTitle
	doc.Fault = true
	return doc
}
