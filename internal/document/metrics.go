package document

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triptacticx_pdf_renders_total",
			Help: "Total number of plan PDF renders by status.",
		},
		[]string{"status"},
	)
	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triptacticx_pdf_render_duration_seconds",
		Help:    "Histogram of plan PDF render durations.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
	})
	renderSizeBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triptacticx_pdf_size_bytes",
		Help:    "Histogram of rendered plan PDF sizes.",
		Buckets: prometheus.ExponentialBuckets(2048, 2, 10), // 2KB .. 1MB
	})
)
