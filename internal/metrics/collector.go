// Package metrics exposes Prometheus metrics for PipeWire adapter calls.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thesyncim/pipewire"
)

// Config configures the collector and its HTTP endpoint.
type Config struct {
	Namespace string `yaml:"namespace"`
	Addr      string `yaml:"addr"`
	Path      string `yaml:"path"`
}

// Collector records adapter calls. It implements pipewire.Observer.
type Collector struct {
	config   Config
	registry *prometheus.Registry
	server   *http.Server

	calls    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ pipewire.Observer = (*Collector)(nil)

// NewCollector creates a collector with its own registry. Zero config
// fields take defaults.
func NewCollector(config Config) (*Collector, error) {
	if config.Namespace == "" {
		config.Namespace = "gopw"
	}
	if config.Path == "" {
		config.Path = "/metrics"
	}

	c := &Collector{
		config:   config,
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "calls_total",
			Help:      "PipeWire adapter calls by operation and status.",
		}, []string{"operation", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "errors_total",
			Help:      "Failed PipeWire adapter calls by operation and errno code.",
		}, []string{"operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "call_duration_seconds",
			Help:      "PipeWire adapter call latency.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"operation"}),
	}

	for _, col := range []prometheus.Collector{c.calls, c.errors, c.duration} {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return c, nil
}

// ObserveCall implements pipewire.Observer.
func (c *Collector) ObserveCall(op string, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
		c.errors.WithLabelValues(op, strconv.Itoa(pipewire.Code(err))).Inc()
	}
	c.calls.WithLabelValues(op, status).Inc()
	c.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// Registry returns the Prometheus registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns the metrics HTTP handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Start serves the metrics endpoint on config.Addr in the background. It is
// a no-op when Addr is empty.
func (c *Collector) Start(errFn func(error)) {
	if c.config.Addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle(c.config.Path, c.Handler())

	c.server = &http.Server{
		Addr:              c.config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && errFn != nil {
			errFn(err)
		}
	}()
}

// Stop shuts the metrics endpoint down.
func (c *Collector) Stop(ctx context.Context) error {
	if c.server == nil {
		return nil
	}
	return c.server.Shutdown(ctx)
}
