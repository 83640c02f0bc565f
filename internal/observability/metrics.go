package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	decodeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skemawire",
			Subsystem: "decode",
			Name:      "total",
			Help:      "Total decodes by mode and outcome code.",
		},
		[]string{"mode", "outcome"},
	)
	decodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "skemawire",
			Subsystem: "decode",
			Name:      "duration_seconds",
			Help:      "Decode duration in seconds, envelope to records.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"mode"},
	)
	decodeObjects = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "skemawire",
			Subsystem: "decode",
			Name:      "objects",
			Help:      "Objects materialized per successful decode.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"mode"},
	)
	unknownTypes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skemawire",
			Name:      "unknown_type_total",
			Help:      "Decodes aborted on a class missing from the type registry.",
		},
		[]string{"class"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(decodeTotal, decodeDuration, decodeObjects, unknownTypes)
	})
}

// RecordDecode counts one decode. outcome is the error code, "OK" on success.
func RecordDecode(mode, outcome string, objects int, duration time.Duration) {
	RegisterMetrics()
	decodeTotal.WithLabelValues(mode, outcome).Inc()
	decodeDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if objects > 0 {
		decodeObjects.WithLabelValues(mode).Observe(float64(objects))
	}
}

func RecordUnknownType(class string) {
	RegisterMetrics()
	unknownTypes.WithLabelValues(class).Inc()
}
