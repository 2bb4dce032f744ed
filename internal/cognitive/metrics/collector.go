package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector manages metrics collection
type Collector struct {
	handler http.Handler
	stop    chan struct{}
}

func NewCollector() *Collector {
	return &Collector{
		handler: promhttp.Handler(),
		stop:    make(chan struct{}),
	}
}

// Handler returns the HTTP handler for the metrics endpoint
func (c *Collector) Handler() http.Handler {
	return c.handler
}

// Start refreshes the system gauges every 10 seconds until Stop is called.
func (c *Collector) Start() {
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				UpdateSystemMetrics()
			case <-c.stop:
				return
			}
		}
	}()
}

func (c *Collector) Stop() {
	close(c.stop)
}

func UpdateSystemMetrics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	UptimeSeconds.Set(time.Since(startTime).Seconds())
	MemoryUsageBytes.Set(float64(memStats.Alloc))
	GoroutinesActive.Set(float64(runtime.NumGoroutine()))
}
