package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
)

// Page margins for the exported ticket, in millimetres
const (
	pdfSideMargin = 10.0
	pdfTopMargin  = 10.0
)

// PDFAssembler lays a captured ticket on the top half of an A4 portrait page
type PDFAssembler struct{}

// FitImage scales an image of imgW x imgH pixels into the page, keeping its aspect ratio.
// Width is capped at pageW-20 and height at pageH/2-10; the result is centered horizontally.
func FitImage(pageW, pageH, imgW, imgH float64) (x, y, w, h float64) {
	w = pageW - 2*pdfSideMargin
	if imgW <= 0 || imgH <= 0 {
		return (pageW - w) / 2, pdfTopMargin, w, 0
	}
	ratio := imgW / imgH
	h = w / ratio

	maxH := pageH/2 - pdfTopMargin
	if h > maxH {
		h = maxH
		w = h * ratio
	}
	return (pageW - w) / 2, pdfTopMargin, w, h
}

func (PDFAssembler) Assemble(jpegData []byte, widthPx, heightPx int) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	x, y, w, h := FitImage(pageW, pageH, float64(widthPx), float64(heightPx))

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("ticket", opts, bytes.NewReader(jpegData))
	pdf.ImageOptions("ticket", x, y, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
