// Package metrics exposes session store statistics as Prometheus gauges.
// The collector reads from the store at scrape time, so numbers are current
// without a polling loop.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// defaultStatsTimeout bounds the store query so a stalled backend fails the
// scrape instead of hanging it.
const defaultStatsTimeout = 5 * time.Second

// Collector implements prometheus.Collector over a session.StatsReporter.
// Register it with a prometheus.Registry; every scrape then queries the
// store once.
type Collector struct {
	reporter session.StatsReporter
	timeout  time.Duration

	stored  *prometheus.Desc
	expired *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// Option configures a Collector.
type Option func(*collectorConfig)

type collectorConfig struct {
	namespace string
	timeout   time.Duration
}

// WithNamespace prefixes the metric names, e.g. "app" yields
// app_sessions_stored.
func WithNamespace(namespace string) Option {
	return func(c *collectorConfig) {
		c.namespace = namespace
	}
}

// WithTimeout overrides how long a scrape may wait on the store.
func WithTimeout(timeout time.Duration) Option {
	return func(c *collectorConfig) {
		c.timeout = timeout
	}
}

// NewCollector returns a collector reporting the given store's statistics.
func NewCollector(reporter session.StatsReporter, opts ...Option) *Collector {
	cfg := collectorConfig{timeout: defaultStatsTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Collector{
		reporter: reporter,
		timeout:  cfg.timeout,
		stored: prometheus.NewDesc(
			prometheus.BuildFQName(cfg.namespace, "sessions", "stored"),
			"Number of session payloads currently stored, expired ones included.",
			nil, nil,
		),
		expired: prometheus.NewDesc(
			prometheus.BuildFQName(cfg.namespace, "sessions", "expired"),
			"Number of stored payloads past their deadline but not yet swept.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.stored
	ch <- c.expired
}

// Collect implements prometheus.Collector. A failing store surfaces as an
// invalid metric, which makes the scrape report the error.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stats, err := c.reporter.Stats(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.stored, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.stored, prometheus.GaugeValue, float64(stats.Total))
	ch <- prometheus.MustNewConstMetric(c.expired, prometheus.GaugeValue, float64(stats.Expired))
}
