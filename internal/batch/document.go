// Package batch drives a one-shot conversion of PDF documents into
// per-page JPEG images over a bounded worker pool. One failing document
// never aborts the batch; every failure is reported and counted.
package batch

import (
	"os"
	"path/filepath"
	"strings"
)

// Document is one input PDF, identified by its filesystem path.
type Document struct {
	Path string
}

// Name returns the file name including extension, used in user-facing
// error messages.
func (d Document) Name() string {
	return filepath.Base(d.Path)
}

// Stem returns the file name without its extension.
func (d Document) Stem() string {
	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputDir returns the document's dedicated image directory: a
// subdirectory named after the document, next to it.
func (d Document) OutputDir() string {
	return filepath.Join(filepath.Dir(d.Path), d.Stem())
}

// EnsureOutputDir creates the output directory if absent and returns its
// path. Creation is idempotent; a pre-existing directory is not an error.
func (d Document) EnsureOutputDir() (string, error) {
	dir := d.OutputDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DocumentsFromPaths wraps raw CLI paths in Document values.
func DocumentsFromPaths(paths []string) []Document {
	docs := make([]Document, len(paths))
	for i, p := range paths {
		docs[i] = Document{Path: p}
	}
	return docs
}
