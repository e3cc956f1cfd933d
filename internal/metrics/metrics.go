package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	documentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdfbatch",
			Name:      "documents_total",
			Help:      "Documents processed by result (converted, scan_failed, convert_failed)",
		},
		[]string{"result"},
	)

	pagesRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdfbatch",
			Name:      "pages_rendered_total",
			Help:      "Total pages rendered across all documents",
		},
	)

	imagesSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdfbatch",
			Name:      "images_saved_total",
			Help:      "Total JPEG images written to disk",
		},
	)

	documentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pdfbatch",
			Name:      "document_duration_seconds",
			Help:      "Wall time to convert one document",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(documentsTotal, pagesRendered, imagesSaved, documentDuration)
}

// Handler returns the http.Handler for /metrics.
func Handler() http.Handler { return promhttp.Handler() }

// Serve starts a /metrics listener on addr in a background goroutine.
// The listener lives only as long as the batch process.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warn().Err(err).Str("addr", addr).Msg("metrics listener stopped")
		}
	}()
}

func IncDocument(result string)         { documentsTotal.WithLabelValues(result).Inc() }
func AddPagesRendered(n int)            { pagesRendered.Add(float64(n)) }
func AddImagesSaved(n int)              { imagesSaved.Add(float64(n)) }
func ObserveDocument(dur time.Duration) { documentDuration.Observe(dur.Seconds()) }
