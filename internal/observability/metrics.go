package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard service.
type Metrics struct {
	FetchRequests *prometheus.CounterVec   // labels: action={weather,air_quality,alerts}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: action
	Sessions      prometheus.Gauge
	SessionsEnded *prometheus.CounterVec // labels: reason={closed,expired}
	RefreshRuns   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.Sessions,
		m.SessionsEnded,
		m.RefreshRuns,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "fetch_requests_total",
			Help:      "Fetch actions by action and outcome.",
		}, []string{"action", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dashboard",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream fetch duration including retries.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"action"}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Name:      "sessions",
			Help:      "Live dashboard sessions.",
		}),
		SessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "sessions_ended_total",
			Help:      "Sessions torn down, by reason.",
		}, []string{"reason"}),
		RefreshRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "scheduled_refresh_runs_total",
			Help:      "Completed scheduled refresh runs.",
		}),
	}
}
