package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "analysis_ticks_total", Help: "Analysis passes by outcome"},
		[]string{"result"},
	)
	FetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "price_fetch_failures_total", Help: "Pairs missing from a snapshot"},
		[]string{"pair"},
	)
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "notifications_total", Help: "Notifications attempted"},
		[]string{"kind", "result"},
	)
	DiffPercent = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "arbitrage_diff_percent", Help: "Last implied vs market rate difference"},
	)
	RSI = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "rsi_value", Help: "Last computed RSI, unchanged when undefined"},
	)
	HistorySamples = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "price_history_samples", Help: "Samples held in the price history"},
	)
)

const (
	ResultComplete   = "complete"
	ResultIncomplete = "incomplete"
	ResultFailed     = "failed"

	ResultSent = "sent"
	ResultLost = "lost"
)

func init() {
	prometheus.MustRegister(TicksTotal, FetchFailuresTotal, NotificationsTotal, DiffPercent, RSI, HistorySamples)
}

// Delivery maps a best-effort send outcome to a label value.
func Delivery(ok bool) string {
	if ok {
		return ResultSent
	}
	return ResultLost
}
