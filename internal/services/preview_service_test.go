package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"weighbridge-backend/internal/cache"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/templates"
)

func TestPreviewFaultsAreScopedPerUser(t *testing.T) {
	broken := templates.RendererFunc(func(models.Ticket, templates.Env) (*templates.Document, error) {
		panic("layout bug")
	})
	svc := NewPreviewService(templates.NewRegistry(templates.WithRenderer(models.TemplateGrid, broken)))
	ctx := context.Background()
	tk := models.NewTicket()

	doc := svc.Render(ctx, 1, tk, models.TemplateGrid)
	if !doc.Fault || !strings.Contains(string(doc.HTML), "حدث خطأ أثناء عرض المعاينة.") {
		t.Fatalf("expected notice, got %q", doc.HTML)
	}

	// another user previewing a healthy template is unaffected
	if doc := svc.Render(ctx, 2, tk, models.TemplateClassic); doc.Fault {
		t.Error("fault leaked to another user")
	}

	// the same user switching template recovers
	if doc := svc.Render(ctx, 1, tk, models.TemplateClassic); doc.Fault {
		t.Error("boundary did not reset on template switch")
	}
}

func TestPreviewFallsBackForUnknownTemplate(t *testing.T) {
	svc := NewPreviewService(templates.NewRegistry())
	doc := svc.Render(context.Background(), 1, models.NewTicket(), "nonexistent")
	if doc.Fault || doc.TemplateID != models.TemplateOfficial3 {
		t.Errorf("got template %s fault=%v", doc.TemplateID, doc.Fault)
	}
}

func TestPreviewBoundaryResetsAcrossCachedPair(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer cache.Close()

	var failing atomic.Bool
	classic := templates.RendererFunc(func(tk models.Ticket, _ templates.Env) (*templates.Document, error) {
		if failing.Load() {
			return nil, errors.New("layout bug")
		}
		return &templates.Document{TemplateID: models.TemplateClassic, Title: tk.TicketNo, HTML: []byte("<p>classic</p>"), Copies: 1}, nil
	})
	svc := NewPreviewService(templates.NewRegistry(templates.WithRenderer(models.TemplateClassic, classic)))
	ctx := context.Background()
	a := models.NewTicket(models.WithTemplate(models.TemplateClassic))
	b := models.NewTicket(models.WithTemplate(models.TemplateGrid))

	if doc := svc.Render(ctx, 1, b, ""); doc.Fault {
		t.Fatal("grid preview faulted")
	}
	if len(mr.Keys()) == 0 {
		t.Fatal("grid preview was not cached")
	}

	failing.Store(true)
	if doc := svc.Render(ctx, 1, a, ""); !doc.Fault {
		t.Fatal("expected notice for failing classic render")
	}

	// served from cache, but still a different pair
	if doc := svc.Render(ctx, 1, b, ""); doc.Fault {
		t.Fatal("cached grid preview faulted")
	}

	failing.Store(false)
	doc := svc.Render(ctx, 1, a, "")
	if doc.Fault || string(doc.HTML) != "<p>classic</p>" {
		t.Errorf("classic still faulted after switching pairs: fault=%v html=%q", doc.Fault, doc.HTML)
	}
}

func TestPreviewFaultedPairSkipsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer cache.Close()

	var failing atomic.Bool
	classic := templates.RendererFunc(func(models.Ticket, templates.Env) (*templates.Document, error) {
		if failing.Load() {
			panic("layout bug")
		}
		return &templates.Document{TemplateID: models.TemplateClassic, HTML: []byte("<p>ok</p>"), Copies: 1}, nil
	})
	svc := NewPreviewService(templates.NewRegistry(templates.WithRenderer(models.TemplateClassic, classic)))
	ctx := context.Background()
	tk := models.NewTicket(models.WithTemplate(models.TemplateClassic))

	if doc := svc.Render(ctx, 1, tk, ""); doc.Fault {
		t.Fatal("healthy preview faulted")
	}

	failing.Store(true)
	edited := tk
	edited.Notes = "edited"
	if doc := svc.Render(ctx, 1, edited, ""); !doc.Fault {
		t.Fatal("expected notice")
	}

	// reverting the edit matches the cached entry, but the pair is still faulted
	if doc := svc.Render(ctx, 1, tk, ""); !doc.Fault {
		t.Error("faulted pair was served from cache")
	}
}
