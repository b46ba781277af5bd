// Package metrics handles processing and exposing counters for Glance
// store and API activity via Prometheus.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var defaultMetrics *Metrics

// Metrics holds the Prometheus collectors tracking store and API
// activity.
type Metrics struct {
	imagesStored  prometheus.Gauge       // Gauge for images currently stored.
	imagesCreated prometheus.Counter     // Counter for created images.
	tagsCreated   prometheus.Counter     // Counter for created tags.
	tagsDeleted   prometheus.Counter     // Counter for deleted tags.
	requests      *prometheus.CounterVec // Counter for API requests by handler.
}

// NewWithRegistry creates a Metrics handler registered against a
// custom Prometheus registry, returning an error when a collector is
// already registered.
func NewWithRegistry(registry prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		imagesStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "glance_images_stored",
			Help: "Number of images currently held by the glance store",
		}),
		imagesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "glance_images_created_total",
			Help: "Total number of images created since glance started",
		}),
		tagsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "glance_image_tags_created_total",
			Help: "Total number of image tags created since glance started",
		}),
		tagsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "glance_image_tags_deleted_total",
			Help: "Total number of image tags deleted since glance started",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "glance_api_requests_total",
			Help: "Total number of API requests served, partitioned by handler",
		}, []string{"handler"}),
	}

	collectors := []prometheus.Collector{
		metrics.imagesStored,
		metrics.imagesCreated,
		metrics.tagsCreated,
		metrics.tagsDeleted,
		metrics.requests,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return metrics, nil
}

// Default returns the singleton Metrics instance, creating it against
// the default Prometheus registry on first use.
func Default() *Metrics {
	if defaultMetrics == nil {
		metrics, err := NewWithRegistry(prometheus.DefaultRegisterer)
		if err != nil {
			// The default registry only rejects duplicates, which a
			// singleton rules out.
			panic(err)
		}

		defaultMetrics = metrics
	}

	return defaultMetrics
}

// RegisterImageCreated records a created image.
func (m *Metrics) RegisterImageCreated() {
	m.imagesCreated.Inc()
	m.imagesStored.Inc()
}

// RegisterTagCreated records a created image tag.
func (m *Metrics) RegisterTagCreated() {
	m.tagsCreated.Inc()
}

// RegisterTagDeleted records a deleted image tag.
func (m *Metrics) RegisterTagDeleted() {
	m.tagsDeleted.Inc()
}

// RegisterRequest records an API request against a named handler.
func (m *Metrics) RegisterRequest(handler string) {
	m.requests.WithLabelValues(handler).Inc()
}
