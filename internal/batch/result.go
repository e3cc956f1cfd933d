package batch

import "fmt"

// Result is the outcome of converting one document. Exactly one worker
// produces it and the aggregator consumes it exactly once.
//
// On success PagesRendered equals len(ImagePaths). On failure both are
// zero: a document either converts fully or reports nothing, even if
// some pages hit disk before the fault.
type Result struct {
	Doc           Document
	ImagePaths    []string
	PagesRendered int
	Err           error
}

// Summary aggregates all per-document results for one batch run.
type Summary struct {
	// ImagePaths lists every saved image across the batch.
	ImagePaths []string
	// Skipped holds one error message per failed document, in the order
	// failures were discovered.
	Skipped []string
}

// ImagesSaved returns the total number of images written.
func (s *Summary) ImagesSaved() int { return len(s.ImagePaths) }

// Message renders the human-readable summary line(s).
func (s *Summary) Message() string {
	msg := fmt.Sprintf("Saved %d images in their respective subfolders.", len(s.ImagePaths))
	if len(s.Skipped) > 0 {
		msg += fmt.Sprintf("\nSkipped %d PDFs due to errors.", len(s.Skipped))
	}
	return msg
}
