package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	startTime = time.Now()

	// System metrics
	UptimeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "uptime_seconds",
		Help:      "Time passed since the consensus engine started in seconds",
	})

	MemoryUsageBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "memory_usage_bytes",
		Help:      "Service memory consumption",
	})

	GoroutinesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "goroutines_active",
		Help:      "Active Go routines",
	})

	// Registry
	ProofsSubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "proofs_submitted_total",
		Help:      "Proof submissions (result=new/replaced)",
	}, []string{"result"})

	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "validations_total",
		Help:      "Validator votes by outcome (unknown_proof/pending/consensus)",
	}, []string{"outcome"})

	ProofsVerifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "proofs_verified_total",
		Help:      "Proofs that reached the confirmation threshold",
	})

	VerifiedProofs = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "verified_proofs",
		Help:      "Verified proofs currently held in the registry",
	})

	RegisteredValidators = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "registered_validators",
		Help:      "Entries in the validator roster",
	})

	RewardCalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "reward_calculations_total",
		Help:      "Reward split calculations by outcome (split/empty). Calculations are reads, not payouts",
	}, []string{"outcome"})

	// API
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "consensus",
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the consensus API",
	}, []string{"method", "endpoint", "status_code"})
)

func TrackHTTPRequest(method, endpoint, statusCode string) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
}
