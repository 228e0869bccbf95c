package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triptacticx_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status", "agent"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triptacticx_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model", "agent"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triptacticx_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20), // 250 .. 5000
		},
		[]string{"model", "agent"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triptacticx_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20), // 100 .. 2000
		},
		[]string{"model", "agent"},
	)
	aiEstimatedCostUSD = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triptacticx_ai_estimated_cost_usd_total",
			Help: "Estimated total cost of AI requests in USD.",
		},
		[]string{"model"},
	)
	planDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triptacticx_planner_duration_seconds",
		Help:    "Histogram of full multi-agent planning durations.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s .. ~4m
	})
)

// observeUsage записывает метрики успешного запроса.
func observeUsage(model, agent string, seconds float64, usage UsageInfo) {
	aiRequestsTotal.WithLabelValues(model, "success", agent).Inc()
	aiRequestDuration.WithLabelValues(model, agent).Observe(seconds)
	if usage.TotalTokens > 0 {
		aiPromptTokens.WithLabelValues(model, agent).Observe(float64(usage.PromptTokens))
		aiCompletionTokens.WithLabelValues(model, agent).Observe(float64(usage.CompletionTokens))
	}
	if usage.EstimatedCostUSD > 0 {
		aiEstimatedCostUSD.WithLabelValues(model).Add(usage.EstimatedCostUSD)
	}
}
