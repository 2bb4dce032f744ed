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
		Subsystem: "cognitive",
		Name:      "uptime_seconds",
		Help:      "Time passed since the cognitive engine started in seconds",
	})

	MemoryUsageBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "memory_usage_bytes",
		Help:      "Service memory consumption",
	})

	GoroutinesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "goroutines_active",
		Help:      "Active Go routines",
	})

	// Task processing
	TasksProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "tasks_processed_total",
		Help:      "Tasks dispatched to a reasoning strategy (task_type, status=success/failure)",
	}, []string{"task_type", "status"})

	TaskFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "task_failures_total",
		Help:      "Failed tasks by error kind (InvalidInput/MissingField/UnknownTaskType/other)",
	}, []string{"kind"})

	TaskProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "task_processing_duration_seconds",
		Help:      "Wall time spent inside a reasoning strategy",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"task_type"})

	ResultConfidence = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "result_confidence",
		Help:      "Confidence score of produced results",
		Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
	}, []string{"task_type"})

	// Engine loop
	PendingTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "pending_tasks",
		Help:      "Tasks waiting in the in-memory queue",
	})

	PollCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "poll_cycles_total",
		Help:      "Engine poll cycles (status=success/fetch_error)",
	}, []string{"status"})

	ResultSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "result_submissions_total",
		Help:      "Results handed to the result submitter (status=success/failure)",
	}, []string{"status"})

	// API
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "polyneurons",
		Subsystem: "cognitive",
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the cognitive API",
	}, []string{"method", "endpoint", "status_code"})
)

func TrackHTTPRequest(method, endpoint, statusCode string) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
}
