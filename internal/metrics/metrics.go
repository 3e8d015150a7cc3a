package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TemplateRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_renders_total",
			Help: "Ticket template renders by template id",
		},
		[]string{"template"},
	)

	TemplateFaultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_render_faults_total",
			Help: "Renders replaced by the fault notice",
		},
		[]string{"template"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_exports_total",
			Help: "Ticket exports by format and outcome",
		},
		[]string{"format", "status"},
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticket_export_duration_seconds",
			Help:    "Time from staging to finished file",
			Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 30},
		},
		[]string{"format"},
	)

	LiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_sessions",
			Help: "Open WebSocket sessions",
		},
	)

	StoreNotificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_notifications_total",
			Help: "Change notifications received from Postgres",
		},
	)
)
