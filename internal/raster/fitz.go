// Package raster wraps the PDF rasterization engine. The rest of the
// program treats rendering as a black box: a document path goes in, an
// ordered sequence of page images comes out.
package raster

import (
	"fmt"
	"image"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"
)

// DefaultDPI is the render resolution used when none is configured.
const DefaultDPI = 150

// FitzEngine renders PDF pages with MuPDF via go-fitz.
type FitzEngine struct {
	dpi float64
}

// NewFitzEngine returns an engine rendering at the given DPI.
// Non-positive values fall back to DefaultDPI.
func NewFitzEngine(dpi int) *FitzEngine {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &FitzEngine{dpi: float64(dpi)}
}

// Render rasterizes every page of the PDF at path, in page order.
// Malformed, unreadable or encrypted documents fail here with the
// engine's error wrapped.
func (e *FitzEngine) Render(path string) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	pages := make([]image.Image, 0, total)
	for i := 0; i < total; i++ {
		img, err := doc.ImageDPI(i, e.dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i+1, err)
		}
		bounds := img.Bounds()
		log.Debug().
			Str("pdf", path).
			Int("page", i+1).
			Int("width", bounds.Dx()).
			Int("height", bounds.Dy()).
			Float64("dpi", e.dpi).
			Msg("rendered page")
		pages = append(pages, img)
	}
	return pages, nil
}
