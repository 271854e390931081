package metrics

import (
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomePublished = "published"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

var (
	FetchCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_fetch_cycles_total",
			Help: "Fetch cycles by refresh path and outcome",
		},
		[]string{"path", "outcome"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_query_duration_seconds",
			Help:    "Backend query latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)

	QueryFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_query_failures_total",
			Help: "Backend queries that ended in a fetch failure",
		},
		[]string{"endpoint"},
	)

	Loading = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_loading",
			Help: "1 while a full refresh is pending, 0 otherwise",
		},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FetchCycles)
		prometheus.MustRegister(QueryDuration)
		prometheus.MustRegister(QueryFailures)
		prometheus.MustRegister(Loading)
	})
}

// Handler exposes the default registry for echo.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
