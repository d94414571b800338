package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes used as metric labels
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
	outcomeBlocked  = "blocked"
)

var (
	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_applications_submitted_total",
			Help: "Total number of audit application submit attempts by outcome",
		},
		[]string{"outcome"},
	)

	RelayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "audit_relay_request_duration_seconds",
			Help:    "Duration of outbound form relay requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	ApplicationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "audit_applications_in_flight",
			Help: "Number of relay requests currently awaiting a response",
		},
	)

	ModalOpens = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_modal_opens_total",
			Help: "Total number of times the application modal was opened",
		},
	)

	ActiveVisitors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "audit_active_visitor_sessions",
			Help: "Number of visitor page states held in memory",
		},
	)
)
