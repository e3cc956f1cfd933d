// Package progress renders the aggregate page counter on the status stream.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar tracks pages completed against the batch-wide total.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New creates a bar for total pages writing to out (normally stderr, so
// stdout stays clean for the summary).
func New(total int, out io.Writer) *Bar {
	b := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Processing PDFs"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return &Bar{bar: b}
}

// Add advances the bar by n pages.
func (b *Bar) Add(n int) {
	if b == nil {
		return
	}
	_ = b.bar.Add(n)
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	if b == nil {
		return
	}
	_ = b.bar.Finish()
}
