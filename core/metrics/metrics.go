package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the sync pipeline reports into.
type Recorder interface {
	ObserveFetch(outcome string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	AddUpdatesFound(count int)
	IncDownloads(outcome string)
	IncVerifications(outcome string)
	Handler() http.Handler
}

// Outcome labels shared by the counters.
const (
	OutcomeOK         = "ok"
	OutcomeNotFound   = "not_found"
	OutcomeFailed     = "failed"
	OutcomeMismatch   = "mismatch"
	OutcomeUnverified = "unverified"
)

// Prometheus records into a private registry so several instances can coexist.
type Prometheus struct {
	registry      *prometheus.Registry
	fetchDuration *prometheus.HistogramVec
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	updatesFound  prometheus.Counter
	downloads     *prometheus.CounterVec
	verifications *prometheus.CounterVec
}

// New returns a Prometheus recorder when enabled, otherwise a no-op.
func New(cfg Config) Recorder {
	if !cfg.Enabled {
		return Noop{}
	}
	return NewPrometheus(prometheus.NewRegistry())
}

// NewPrometheus registers the collectors on reg.
func NewPrometheus(reg *prometheus.Registry) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		registry: reg,
		fetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "modsync_catalog_fetch_duration_seconds",
			Help:    "Catalog fetch duration in seconds by outcome",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "modsync_catalog_cache_hits_total",
			Help: "Total number of catalog cache hits",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "modsync_catalog_cache_misses_total",
			Help: "Total number of catalog cache misses",
		}),
		updatesFound: f.NewCounter(prometheus.CounterOpts{
			Name: "modsync_updates_found_total",
			Help: "Total number of mods with a newer release",
		}),
		downloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "modsync_downloads_total",
			Help: "Total number of archive downloads by outcome",
		}, []string{"outcome"}),
		verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "modsync_verifications_total",
			Help: "Total number of archive verifications by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Prometheus) ObserveFetch(outcome string, duration time.Duration) {
	m.fetchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Prometheus) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *Prometheus) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *Prometheus) AddUpdatesFound(count int) {
	m.updatesFound.Add(float64(count))
}

func (m *Prometheus) IncDownloads(outcome string) {
	m.downloads.WithLabelValues(outcome).Inc()
}

func (m *Prometheus) IncVerifications(outcome string) {
	m.verifications.WithLabelValues(outcome).Inc()
}

// Handler serves the private registry in the Prometheus text format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Noop discards everything.
type Noop struct{}

func (Noop) ObserveFetch(_ string, _ time.Duration) {}
func (Noop) IncCacheHits()                         {}
func (Noop) IncCacheMisses()                       {}
func (Noop) AddUpdatesFound(_ int)                 {}
func (Noop) IncDownloads(_ string)                 {}
func (Noop) IncVerifications(_ string)             {}

// Handler answers 404 since nothing is collected.
func (Noop) Handler() http.Handler { return http.NotFoundHandler() }
