package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProofsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "validator",
		Name:      "proofs_generated_total",
		Help:      "Proofs of reasoning generated by this node",
	})

	ProofSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "validator",
		Name:      "proof_submissions_total",
		Help:      "Proof submissions to the registry (status=success/failure)",
	}, []string{"status"})

	ReasoningCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "validator",
		Name:      "reasoning_cycles_total",
		Help:      "Reasoning loop cycles (status=success/fetch_error)",
	}, []string{"status"})

	LatestBlockNumber = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "validator",
		Name:      "latest_block_number",
		Help:      "Most recent block number observed on the chain RPC",
	})
)
