// Package metrics exports reconciliation and translation statistics in the
// Prometheus text format.
package metrics

import (
	"context"
	"time"

	"github.com/ZaguanLabs/i18nsync"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "i18nsync"

// Collector records sync outcomes into its own Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	reconciled   *prometheus.CounterVec
	added        *prometheus.CounterVec
	removed      *prometheus.CounterVec
	stale        *prometheus.GaugeVec
	skipped      *prometheus.CounterVec
	aborted      *prometheus.CounterVec
	loadErrors   prometheus.Counter
	requests     *prometheus.CounterVec
	duration     prometheus.Histogram
	cacheLookups *prometheus.GaugeVec
	lastRun      prometheus.Gauge
}

// NewCollector creates a collector with a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		reconciled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictionaries_reconciled_total",
			Help:      "Dictionaries reconciled and saved.",
		}, []string{"language"}),
		added: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_added_total",
			Help:      "Keys inserted into dictionaries.",
		}, []string{"language"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_removed_total",
			Help:      "Stale keys deleted from dictionaries.",
		}, []string{"language"}),
		stale: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keys_stale",
			Help:      "Stale keys kept in a dictionary after the last reconciliation.",
		}, []string{"language"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_skipped_total",
			Help:      "Missing keys not inserted, by reason.",
		}, []string{"language", "reason"}),
		aborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "addition_aborted_total",
			Help:      "Addition passes aborted by a translation failure.",
		}, []string{"language"}),
		loadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dictionary_load_errors_total",
			Help:      "Dictionaries skipped because they could not be loaded.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_requests_total",
			Help:      "Translation provider calls, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "translation_duration_seconds",
			Help:      "Latency of translation provider calls.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8),
		}),
		cacheLookups: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_lookups",
			Help:      "Translation cache lookups in the last run, by result.",
		}, []string{"result"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),
	}

	c.registry.MustRegister(
		c.reconciled, c.added, c.removed, c.stale, c.skipped, c.aborted,
		c.loadErrors, c.requests, c.duration, c.cacheLookups, c.lastRun,
	)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveResult records one reconciled dictionary.
func (c *Collector) ObserveResult(res *i18nsync.Result) {
	lang := res.Language
	c.reconciled.WithLabelValues(lang).Inc()
	c.added.WithLabelValues(lang).Add(float64(len(res.Added)))
	c.removed.WithLabelValues(lang).Add(float64(len(res.Removed)))
	c.stale.WithLabelValues(lang).Set(float64(len(res.Stale)))
	c.skipped.WithLabelValues(lang, "empty").Add(float64(len(res.SkippedEmpty)))
	c.skipped.WithLabelValues(lang, "disabled").Add(float64(len(res.SkippedDisabled)))
	if res.Err != nil {
		c.aborted.WithLabelValues(lang).Inc()
	}
}

// ObserveLoadError records a dictionary skipped in batch mode.
func (c *Collector) ObserveLoadError(string) {
	c.loadErrors.Inc()
}

// ObserveCache records translation cache statistics.
func (c *Collector) ObserveCache(hits, misses int) {
	c.cacheLookups.WithLabelValues("hit").Set(float64(hits))
	c.cacheLookups.WithLabelValues("miss").Set(float64(misses))
}

// MarkRun sets the last-run timestamp.
func (c *Collector) MarkRun(t time.Time) {
	c.lastRun.Set(float64(t.Unix()))
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// for the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// InstrumentedProvider counts and times calls to a Provider.
type InstrumentedProvider struct {
	provider  i18nsync.Provider
	collector *Collector
}

// Instrument wraps provider so its calls are recorded by c.
func (c *Collector) Instrument(provider i18nsync.Provider) *InstrumentedProvider {
	return &InstrumentedProvider{provider: provider, collector: c}
}

// Translate implements Provider.
func (p *InstrumentedProvider) Translate(ctx context.Context, req i18nsync.TranslateRequest) (string, error) {
	start := time.Now()
	out, err := p.provider.Translate(ctx, req)
	p.collector.duration.Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case i18nsync.IsUnsupportedLanguage(err):
		outcome = "unsupported"
	case err != nil:
		outcome = "error"
	}
	p.collector.requests.WithLabelValues(outcome).Inc()

	return out, err
}

var (
	_ i18nsync.Recorder = (*Collector)(nil)
	_ i18nsync.Provider = (*InstrumentedProvider)(nil)
)
