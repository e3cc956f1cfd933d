// Package filetype detects input file types from magic bytes rather than
// trusting the filename extension.
package filetype

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// Detector identifies file content using magic bytes.
type Detector struct{}

// New creates a file type detector.
func New() *Detector {
	return &Detector{}
}

// DetectMIME returns the MIME type of the file at path.
func (d *Detector) DetectMIME(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	log.Debug().Str("file", path).Str("mime", mtype.String()).Msg("detected file type")
	return mtype.String(), nil
}

// CheckPDF returns an error unless the file at path is a PDF. A renamed
// JPEG or Word document fails here instead of deep inside the raster
// engine, so the batch pre-scan can report it cleanly.
func (d *Detector) CheckPDF(path string) error {
	mime, err := d.DetectMIME(path)
	if err != nil {
		return err
	}
	if mime != "application/pdf" {
		return fmt.Errorf("not a PDF document (detected %s)", mime)
	}
	return nil
}
