// Package main is the entry point for the pdfbatch CLI: it converts one
// or more PDF files into per-page JPEG images, each document's images
// landing in a subdirectory named after the document.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/local/pdfbatch/internal/batch"
	cfgpkg "github.com/local/pdfbatch/internal/config"
	logpkg "github.com/local/pdfbatch/internal/logger"
	"github.com/local/pdfbatch/internal/metrics"
	"github.com/local/pdfbatch/internal/raster"
	"github.com/local/pdfbatch/internal/sampler"
	"github.com/local/pdfbatch/internal/storage"
)

var samplePercent int

var rootCmd = &cobra.Command{
	Use:   "pdfbatch [pdfs...]",
	Short: "Convert PDF files to JPEG images",
	Long: `pdfbatch converts each given PDF into quality-85 JPEG images, one per
page, written to a subdirectory named after the document. Use --sample
to render only a percentage of pages per document; 0 or 100 renders
every page. Failed documents are reported and skipped; they never abort
the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.Flags().IntVar(&samplePercent, "sample", 100, "percentage of pages to sample per PDF (0-100)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg := cfgpkg.FromEnv()

	logOpts := logpkg.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}
	if err := logpkg.Init(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "file logging disabled: %v\n", err)
		logOpts.File = ""
		if err := logpkg.Init(logOpts); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
	}

	metrics.Init()
	if cfg.Metrics.Addr != "" {
		metrics.Serve(cfg.Metrics.Addr)
	}

	ctx := context.Background()

	opts := batch.Options{
		Workers:     cfg.PoolSize(),
		JPEGQuality: cfg.Render.JPEGQuality,
		ErrOut:      os.Stderr,
		ProgressOut: os.Stderr,
	}
	if cfg.Upload.Bucket != "" {
		up, err := storage.NewS3Uploader(ctx, cfg.Upload.Bucket, cfg.Upload.Prefix)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init S3 uploader")
		}
		opts.Uploader = up
	}

	engine := raster.NewFitzEngine(cfg.Render.DPI)
	disp := batch.New(engine, sampler.New(), opts)

	summary := disp.Run(ctx, batch.DocumentsFromPaths(args), samplePercent)

	// Completion is always the success path: a batch with failed (even
	// all-failed) documents still exits zero, with failures listed on
	// stderr and counted in the summary.
	fmt.Println(summary.Message())
	fmt.Println("Process completed successfully.")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
