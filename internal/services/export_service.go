package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"weighbridge-backend/internal/metrics"
	"weighbridge-backend/internal/models"
	"weighbridge-backend/internal/templates"
	"weighbridge-backend/internal/timeutil"
)

// ExportUnavailableMessage is shown when the capture or assembly backends are not configured
const ExportUnavailableMessage = "مكتبات التصدير غير متاحة. يرجى إعادة تحميل الصفحة."

const (
	StageWidthPx = 800
	CaptureScale = 3
	SettleDelay  = 50 * time.Millisecond
	JPEGQuality  = 100

	stageStyle = `<style id="export-stage">html,body{margin:0;background:#fff}` +
		`body{width:800px;padding:1rem;box-sizing:border-box}</style>`
)

var (
	ErrExportUnavailable = errors.New(ExportUnavailableMessage)
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrExportRender      = errors.New("ticket could not be rendered for export")
)

type ExportFormat string

const (
	FormatJPG ExportFormat = "jpg"
	FormatPDF ExportFormat = "pdf"
)

func (f ExportFormat) ContentType() string {
	switch f {
	case FormatJPG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// ParseExportFormat accepts jpg, jpeg and pdf in any case
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ExportFile is a finished artifact ready to download
type ExportFile struct {
	TicketID    string
	Filename    string
	ContentType string
	Data        []byte
}

// ExportFilename names the artifact after the ticket number
func ExportFilename(ticketNo string, format ExportFormat) string {
	return "سند-" + ticketNo + "." + string(format)
}

type Rasterizer interface {
	Capture(ctx context.Context, html []byte, widthPx int, scale float64) (image.Image, error)
}

// DocumentAssembler places a captured JPEG on a printable page
type DocumentAssembler interface {
	Assemble(jpegData []byte, widthPx, heightPx int) ([]byte, error)
}

type Archiver interface {
	Archive(ctx context.Context, userID int, file *ExportFile) error
}

type ExportService struct {
	Registry  *templates.Registry
	Raster    Rasterizer
	Assembler DocumentAssembler
	Archive   Archiver
	Settle    time.Duration
	Now       func() time.Time

	// one ticket staged at a time
	stage sync.Mutex
}

func NewExportService(registry *templates.Registry, raster Rasterizer, assembler DocumentAssembler, archive Archiver) *ExportService {
	return &ExportService{
		Registry:  registry,
		Raster:    raster,
		Assembler: assembler,
		Archive:   archive,
		Settle:    SettleDelay,
		Now:       timeutil.Now,
	}
}

// Available reports whether format can be produced with the configured backends
func (s *ExportService) Available(format ExportFormat) bool {
	if s == nil || s.Raster == nil || s.Registry == nil {
		return false
	}
	return format != FormatPDF || s.Assembler != nil
}

// Export renders t with its own template and produces a JPEG or single-page PDF
func (s *ExportService) Export(ctx context.Context, userID int, t models.Ticket, format ExportFormat) (*ExportFile, error) {
	if format != FormatJPG && format != FormatPDF {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if !s.Available(format) {
		metrics.ExportsTotal.WithLabelValues(string(format), "unavailable").Inc()
		return nil, ErrExportUnavailable
	}

	start := time.Now()
	file, err := s.export(ctx, t, format)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues(string(format), "error").Inc()
		log.Printf("[Export] ticket %s (%s) failed: %v", t.ID, format, err)
		return nil, err
	}
	metrics.ExportsTotal.WithLabelValues(string(format), "ok").Inc()
	metrics.ExportDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())

	if s.Archive != nil {
		if err := s.Archive.Archive(ctx, userID, file); err != nil {
			log.Printf("[Export] archive of %s failed: %v", file.Filename, err)
		}
	}
	return file, nil
}

func (s *ExportService) export(ctx context.Context, t models.Ticket, format ExportFormat) (*ExportFile, error) {
	img, err := s.capture(ctx, t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	data := buf.Bytes()
	if format == FormatPDF {
		b := img.Bounds()
		data, err = s.Assembler.Assemble(data, b.Dx(), b.Dy())
		if err != nil {
			return nil, fmt.Errorf("failed to assemble pdf: %w", err)
		}
	}

	return &ExportFile{
		TicketID:    t.ID,
		Filename:    ExportFilename(t.TicketNo, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// capture stages the ticket, waits for it to settle and rasterizes it
func (s *ExportService) capture(ctx context.Context, t models.Ticket) (image.Image, error) {
	s.stage.Lock()
	defer s.stage.Unlock()

	doc, err := s.Registry.Render(t, t.Template, templates.Env{Now: s.Now()})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportRender, err)
	}
	staged, err := StageDocument(doc.HTML)
	if err != nil {
		return nil, err
	}

	if s.Settle > 0 {
		timer := time.NewTimer(s.Settle)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	img, err := s.Raster.Capture(ctx, staged, StageWidthPx, CaptureScale)
	if err != nil {
		return nil, fmt.Errorf("failed to capture ticket: %w", err)
	}
	return img, nil
}

// StageDocument pins a rendered page to the fixed export width
func StageDocument(html []byte) ([]byte, error) {
	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered ticket: %w", err)
	}
	dom.Find("head").AppendHtml(stageStyle)
	dom.Find("body").SetAttr("data-export", "true")

	out, err := dom.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize staged ticket: %w", err)
	}
	return []byte(out), nil
}
