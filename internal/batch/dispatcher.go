package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/local/pdfbatch/internal/filetype"
	"github.com/local/pdfbatch/internal/metrics"
	"github.com/local/pdfbatch/internal/progress"
)

// Engine is the rasterization collaborator. Render returns the ordered
// sequence of page images for a document; PageCount is the cheap probe
// used to size the batch without rendering.
type Engine interface {
	PageCount(path string) (int, error)
	Render(path string) ([]image.Image, error)
}

// PageSelector chooses which page indices of a document to write.
type PageSelector interface {
	Select(totalPages, percent int) []int
}

// Uploader mirrors a document's finished images to remote storage.
type Uploader interface {
	UploadImages(ctx context.Context, stem string, imagePaths []string) error
}

// TypeChecker rejects inputs that are not PDFs before they reach the pool.
type TypeChecker interface {
	CheckPDF(path string) error
}

// Options tune a Dispatcher. Zero values get sensible defaults in New.
type Options struct {
	// Workers bounds the pool; defaults to min(32, NumCPU).
	Workers int
	// JPEGQuality for written images; defaults to 85.
	JPEGQuality int
	// ErrOut receives per-document error text the moment a failure is
	// known, interleaved with progress. Defaults to os.Stderr.
	ErrOut io.Writer
	// ProgressOut receives the aggregate progress bar. Nil disables it.
	ProgressOut io.Writer
	// Uploader, when set, mirrors each successful document's images.
	Uploader Uploader
}

// Dispatcher owns the worker pool and the aggregation of results.
type Dispatcher struct {
	engine   Engine
	selector PageSelector
	checker  TypeChecker
	opts     Options
}

// New builds a Dispatcher around the given engine and page selector.
func New(engine Engine, selector PageSelector, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 32
		if cpus := runtime.NumCPU(); cpus < opts.Workers {
			opts.Workers = cpus
		}
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 85
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	return &Dispatcher{
		engine:   engine,
		selector: selector,
		checker:  filetype.New(),
		opts:     opts,
	}
}

type scannedDoc struct {
	doc   Document
	pages int
}

// Run converts every document and returns the aggregate summary. The
// batch always completes: a failing document is recorded and reported,
// never allowed to unwind past its own task or abort siblings. There is
// no retry and no cancellation once dispatch begins.
func (d *Dispatcher) Run(ctx context.Context, docs []Document, percent int) Summary {
	logger := log.With().Str("batch_id", uuid.NewString()).Logger()
	logger.Info().
		Int("documents", len(docs)).
		Int("percent", percent).
		Int("workers", d.opts.Workers).
		Msg("starting batch")

	var summary Summary

	// Phase 1: sequential pre-scan, sizing the progress total. A document
	// that fails here is skipped outright and never submitted to the pool.
	survivors := make([]scannedDoc, 0, len(docs))
	totalPages := 0
	for _, doc := range docs {
		pages, err := d.prescan(doc)
		if err != nil {
			msg := fmt.Sprintf("Failed to read %s", doc.Name())
			summary.Skipped = append(summary.Skipped, msg)
			fmt.Fprintln(d.opts.ErrOut, msg)
			logger.Warn().Err(err).Str("pdf", doc.Path).Msg("pre-scan failed, skipping document")
			metrics.IncDocument("scan_failed")
			continue
		}
		survivors = append(survivors, scannedDoc{doc: doc, pages: pages})
		totalPages += pages
	}

	var bar *progress.Bar
	if d.opts.ProgressOut != nil {
		bar = progress.New(totalPages, d.opts.ProgressOut)
	}

	// Phase 2: bounded dispatch. Each task owns exactly one document
	// end-to-end, so no two workers ever touch the same output directory.
	results := make(chan Result)
	go func() {
		g := new(errgroup.Group)
		g.SetLimit(d.opts.Workers)
		for _, s := range survivors {
			doc := s.doc
			g.Go(func() error {
				results <- d.convert(ctx, doc, percent)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	// Aggregate on this goroutine in completion order. Workers never
	// touch the summary directly.
	for res := range results {
		if res.Err != nil {
			msg := res.Err.Error()
			summary.Skipped = append(summary.Skipped, msg)
			fmt.Fprintln(d.opts.ErrOut, msg)
			metrics.IncDocument("convert_failed")
		} else {
			summary.ImagePaths = append(summary.ImagePaths, res.ImagePaths...)
			metrics.IncDocument("converted")
			metrics.AddImagesSaved(len(res.ImagePaths))
		}
		metrics.AddPagesRendered(res.PagesRendered)
		bar.Add(res.PagesRendered)
	}
	bar.Finish()

	logger.Info().
		Int("images", summary.ImagesSaved()).
		Int("skipped", len(summary.Skipped)).
		Msg("batch complete")
	return summary
}

// prescan verifies the file is a PDF and probes its page count.
func (d *Dispatcher) prescan(doc Document) (int, error) {
	if err := d.checker.CheckPDF(doc.Path); err != nil {
		return 0, err
	}
	return d.engine.PageCount(doc.Path)
}
