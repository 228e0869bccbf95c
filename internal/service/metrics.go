package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	plansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triptacticx_plans_total",
			Help: "Total number of plan-trip requests by outcome.",
		},
		[]string{"status"}, // success, invalid_input, planning_failed, render_failed
	)
	emailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triptacticx_emails_total",
			Help: "Total number of generated plans by email outcome.",
		},
		[]string{"status"}, // sent, not_sent
	)
)
