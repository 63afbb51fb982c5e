package metric

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	InflightRequests prometheus.Gauge
}

var (
	once    sync.Once
	metrics *Metrics
)

// New returns the process-wide HTTP metrics, registering them on the
// default registerer on first use.
func New() *Metrics {
	once.Do(func() {
		metrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			}, []string{"method", "path"}),
			RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "path"}),
			InflightRequests: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "http_inflight_requests",
				Help: "Number of HTTP requests currently being served.",
			}),
		}
	})

	return metrics
}
