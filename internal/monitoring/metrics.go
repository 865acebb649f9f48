package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	proposalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "governor_proposals_total",
			Help: "Total number of trade proposals evaluated",
		},
		[]string{"strategy"},
	)

	rejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "governor_rejections_total",
			Help: "Total number of proposals rejected, by stage",
		},
		[]string{"strategy", "stage"},
	)

	orderNotional = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "governor_order_notional",
			Help:    "Distribution of approved order notionals",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
		[]string{"strategy"},
	)

	// Capital metrics
	allocationBalance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "governor_allocation_balance",
			Help: "Current capital allocation per bucket",
		},
		[]string{"bucket"},
	)

	breakerState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "governor_breaker_state",
			Help: "System circuit breaker state (0=normal 1=warning 2=reduced 3=locked)",
		},
	)

	killSwitchActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "governor_kill_switch_active",
			Help: "Whether the kill switch is currently active",
		},
	)

	dailyPnL = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "governor_daily_pnl",
			Help: "Realized PnL for the current trading day",
		},
	)
)

func init() {
	prometheus.MustRegister(proposalsTotal)
	prometheus.MustRegister(rejectionsTotal)
	prometheus.MustRegister(orderNotional)
	prometheus.MustRegister(allocationBalance)
	prometheus.MustRegister(breakerState)
	prometheus.MustRegister(killSwitchActive)
	prometheus.MustRegister(dailyPnL)
}

// MetricsHandler serves the Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordProposal records a proposal evaluation
func RecordProposal(strategy string) {
	proposalsTotal.WithLabelValues(strategy).Inc()
}

// RecordRejection records a rejected proposal with the stage that fired
func RecordRejection(strategy, stage string) {
	rejectionsTotal.WithLabelValues(strategy, stage).Inc()
}

// ObserveOrderNotional records an approved order's committed capital
func ObserveOrderNotional(strategy string, notional float64) {
	orderNotional.WithLabelValues(strategy).Observe(notional)
}

// SetAllocation updates the capital gauge for a bucket
func SetAllocation(bucket string, balance float64) {
	allocationBalance.WithLabelValues(bucket).Set(balance)
}

// SetBreakerState updates the breaker state gauge
func SetBreakerState(state int) {
	breakerState.Set(float64(state))
}

// SetKillSwitchActive updates the kill switch gauge
func SetKillSwitchActive(active bool) {
	if active {
		killSwitchActive.Set(1)
	} else {
		killSwitchActive.Set(0)
	}
}

// SetDailyPnL updates the daily PnL gauge
func SetDailyPnL(pnl float64) {
	dailyPnL.Set(pnl)
}
