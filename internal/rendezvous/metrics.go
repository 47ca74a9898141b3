package rendezvous

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rendezvous",
		Subsystem: "store",
		Name:      "sessions_created_total",
		Help:      "Total rendezvous sessions created.",
	})

	sessionsEvicted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rendezvous",
		Subsystem: "store",
		Name:      "sessions_evicted_total",
		Help:      "Total rendezvous sessions evicted by reason.",
	}, []string{"reason"}) // "hard_capacity", "soft_capacity", "ttl_expired"

	etagMismatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rendezvous",
		Subsystem: "store",
		Name:      "etag_mismatches_total",
		Help:      "Total PUT requests rejected due to an If-Match ETag mismatch.",
	})

	storeSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "rendezvous",
		Subsystem: "store",
		Name:      "sessions_current",
		Help:      "Number of sessions currently held by the store.",
	})
)

func init() {
	prometheus.MustRegister(
		sessionsCreated,
		sessionsEvicted,
		etagMismatches,
		storeSize,
	)
}
