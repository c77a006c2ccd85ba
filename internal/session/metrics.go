package session

import (
	"github.com/prometheus/client_golang/prometheus"

	"sessiond/pkg/types"
)

var (
	switchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sessiond",
			Subsystem: "session",
			Name:      "switches_total",
			Help:      "Total mode switch requests by outcome",
		},
		[]string{"outcome"},
	)

	switchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sessiond",
			Subsystem: "session",
			Name:      "switch_duration_seconds",
			Help:      "Duration of completed mode switches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	settleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sessiond",
			Subsystem: "session",
			Name:      "settle_duration_seconds",
			Help:      "Duration of post-teardown settle windows in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5},
		},
	)

	activeMode = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "sessiond",
			Subsystem: "session",
			Name:      "active",
			Help:      "Whether a session of the given mode is active (0/1)",
		},
		[]string{"mode"},
	)

	teardownWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sessiond",
			Subsystem: "session",
			Name:      "teardown_warnings_total",
			Help:      "Non-fatal errors swallowed during session teardown",
		},
	)
)

func init() {
	prometheus.MustRegister(switchesTotal, switchDuration, settleDuration, activeMode, teardownWarnings)
}

// setActiveMode marks exactly one mode as active in the gauge.
func setActiveMode(mode types.Mode) {
	for _, m := range []types.Mode{types.ModeAR, types.ModePose} {
		v := 0.0
		if m == mode {
			v = 1.0
		}
		activeMode.WithLabelValues(string(m)).Set(v)
	}
}
