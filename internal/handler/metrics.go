package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triptacticx_http_errors_total",
			Help: "Total number of API error responses by route and status.",
		},
		[]string{"route", "status"},
	)
	pdfResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triptacticx_pdf_responses_total",
			Help: "Total number of PDF documents returned over HTTP by route.",
		},
		[]string{"route"},
	)
)
