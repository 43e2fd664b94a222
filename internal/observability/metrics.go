package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Gate outcomes for tracker calls.
const (
	OutcomeForwarded     = "forwarded"
	OutcomeUninitialized = "uninitialized"
	OutcomeUnsupported   = "unsupported"
)

var (
	registerOnce sync.Once

	trackerCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asayer",
			Subsystem: "tracker",
			Name:      "calls_total",
			Help:      "Tracker calls by method and gate outcome.",
		},
		[]string{"method", "outcome"},
	)
	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "asayer",
			Subsystem: "tracker",
			Name:      "fetch_duration_seconds",
			Help:      "Intercepted fetch round trip duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
	profileCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asayer",
			Subsystem: "tracker",
			Name:      "profile_calls_total",
			Help:      "Profiled function invocations.",
		},
		[]string{"name", "panicked"},
	)
	sinkRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asayer",
			Subsystem: "sink",
			Name:      "requests_total",
			Help:      "Total sink HTTP requests.",
		},
		[]string{"method", "path", "status", "session"},
	)
	sinkDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "asayer",
			Subsystem: "sink",
			Name:      "request_duration_seconds",
			Help:      "Sink HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(trackerCalls, fetchDuration, profileCalls, sinkRequests, sinkDuration)
	})
}

func RecordCall(method, outcome string) {
	RegisterMetrics()
	trackerCalls.WithLabelValues(method, outcome).Inc()
}

func RecordFetch(method string, status int, duration time.Duration) {
	RegisterMetrics()
	fetchDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(duration.Seconds())
}

func RecordProfile(name string, panicked bool) {
	RegisterMetrics()
	profileCalls.WithLabelValues(name, strconv.FormatBool(panicked)).Inc()
}

// RecordSinkRequest counts one sink request; withSession reports whether the
// caller carried a session identifier header.
func RecordSinkRequest(method, path string, status int, withSession bool, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	sinkRequests.WithLabelValues(method, path, statusLabel, strconv.FormatBool(withSession)).Inc()
	sinkDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}
