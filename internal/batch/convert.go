package batch

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/local/pdfbatch/internal/metrics"
)

// convert runs one document end-to-end: rasterize, sample, write JPEGs,
// optionally mirror to S3. Every fault — including panics out of the
// raster engine's cgo layer — is converted to a Result error at this
// boundary so it cannot reach or cancel sibling tasks.
func (d *Dispatcher) convert(ctx context.Context, doc Document, percent int) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("pdf", doc.Path).Interface("panic", r).Msg("conversion task panicked")
			res = failure(doc, fmt.Errorf("panic: %v", r))
		}
		metrics.ObserveDocument(time.Since(start))
	}()

	pages, err := d.engine.Render(doc.Path)
	if err != nil {
		return failure(doc, err)
	}

	selected := d.selector.Select(len(pages), percent)

	outDir, err := doc.EnsureOutputDir()
	if err != nil {
		return failure(doc, err)
	}

	saved := make([]string, 0, len(selected))
	for _, idx := range selected {
		name := fmt.Sprintf("%s_page_%d.jpg", doc.Stem(), idx+1)
		path := filepath.Join(outDir, name)
		if err := writeJPEG(path, pages[idx], d.opts.JPEGQuality); err != nil {
			return failure(doc, err)
		}
		saved = append(saved, path)
	}

	if d.opts.Uploader != nil {
		if err := d.opts.Uploader.UploadImages(ctx, doc.Stem(), saved); err != nil {
			return failure(doc, err)
		}
	}

	log.Debug().
		Str("pdf", doc.Path).
		Int("total_pages", len(pages)).
		Int("saved", len(saved)).
		Dur("took", time.Since(start)).
		Msg("converted document")

	return Result{Doc: doc, ImagePaths: saved, PagesRendered: len(saved)}
}

// failure builds the all-or-nothing error Result for a document, with
// the document's name embedded in the message.
func failure(doc Document, err error) Result {
	return Result{Doc: doc, Err: fmt.Errorf("Error processing %s: %w", doc.Name(), err)}
}

func writeJPEG(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
