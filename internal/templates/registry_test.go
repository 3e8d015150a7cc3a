package templates

import (
	"errors"
	"strings"
	"testing"

	"weighbridge-backend/internal/models"
)

func TestLookupFallsBackToOfficial3(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []models.TemplateID{"", "nope", "OFFICIAL"} {
		got, r := reg.Lookup(id)
		if got != models.TemplateOfficial3 || r == nil {
			t.Errorf("Lookup(%q) = %s", id, got)
		}
	}

	tk := models.NewTicket()
	doc, err := reg.Render(tk, "does-not-exist", Env{})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := reg.Render(tk, models.TemplateOfficial3, Env{})
	if string(doc.HTML) != string(want.HTML) {
		t.Error("unknown id did not render official3")
	}
}

func TestRenderUsesTicketTemplate(t *testing.T) {
	reg := NewRegistry()
	tk := models.NewTicket(models.WithTemplate(models.TemplateGrid))
	doc, err := reg.Render(tk, "", Env{})
	if err != nil {
		t.Fatal(err)
	}
	if doc.TemplateID != models.TemplateGrid {
		t.Errorf("rendered %s", doc.TemplateID)
	}
}

func TestBoundaryIsolatesAndResets(t *testing.T) {
	calls := 0
	broken := RendererFunc(func(models.Ticket, Env) (*Document, error) {
		calls++
		panic("boom")
	})
	failing := RendererFunc(func(models.Ticket, Env) (*Document, error) {
		return nil, errors.New("bad data")
	})
	reg := NewRegistry(
		WithRenderer(models.TemplateClassic, broken),
		WithRenderer(models.TemplateModern, failing),
	)
	b := NewBoundary(reg)
	tk := models.NewTicket()

	doc := b.Render(tk, models.TemplateClassic, Env{})
	if !doc.Fault || !strings.Contains(string(doc.HTML), FaultTitle) {
		t.Fatalf("expected fault notice, got %q", doc.HTML)
	}
	if !b.Faulted() {
		t.Error("boundary not faulted")
	}

	// same pair: stays faulted without retrying
	b.Render(tk, models.TemplateClassic, Env{})
	if calls != 1 {
		t.Errorf("renderer called %d times, want 1", calls)
	}

	// pair change: clears and renders normally
	doc = b.Render(tk, models.TemplateGrid, Env{})
	if doc.Fault || b.Faulted() {
		t.Error("boundary did not reset on template change")
	}

	// errors are isolated like panics
	if doc := b.Render(tk, models.TemplateModern, Env{}); !doc.Fault {
		t.Error("error not turned into notice")
	}

	// different ticket with the broken template retries
	other := models.NewTicket()
	b.Render(other, models.TemplateClassic, Env{})
	if calls != 2 {
		t.Errorf("renderer called %d times, want 2", calls)
	}
}

func TestWithRendererIgnoresUnknownIDs(t *testing.T) {
	reg := NewRegistry(WithRenderer("custom", RendererFunc(func(models.Ticket, Env) (*Document, error) {
		return nil, errors.New("unused")
	})))
	if _, ok := reg.renderers["custom"]; ok {
		t.Error("unknown id registered")
	}
}
