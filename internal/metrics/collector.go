package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shortlink"

// Collector owns a private registry with the service and HTTP metrics.
// It satisfies shortener.Metrics and middleware.RequestObserver.
type Collector struct {
	registry *prometheus.Registry

	linksCreated        prometheus.Counter
	idCollisions        prometheus.Counter
	generationExhausted prometheus.Counter
	visitsRecorded      prometheus.Counter

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector registers all metrics, plus Go runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		linksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_created_total",
			Help:      "Short links successfully created.",
		}),
		idCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "id_collisions_total",
			Help:      "Generated short ids rejected because they already existed.",
		}),
		generationExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "id_generation_exhausted_total",
			Help:      "Create calls that ran out of id generation attempts.",
		}),
		visitsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_recorded_total",
			Help:      "Visits appended to short link histories.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by operation and status code.",
		}, []string{"operation", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.linksCreated,
		c.idCollisions,
		c.generationExhausted,
		c.visitsRecorded,
		c.requests,
		c.requestDuration,
	)

	return c
}

func (c *Collector) LinkCreated()         { c.linksCreated.Inc() }
func (c *Collector) IDCollision()         { c.idCollisions.Inc() }
func (c *Collector) GenerationExhausted() { c.generationExhausted.Inc() }
func (c *Collector) VisitRecorded()       { c.visitsRecorded.Inc() }

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(operation string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
