// Package metrics records sync pipeline counters for Prometheus.
//
// New returns a Prometheus recorder on a private registry when metrics are
// enabled and a no-op recorder otherwise, so callers never check the setting.
// The serve command exposes Handler on /metrics.
//
// # Series
//
//   - modsync_catalog_fetch_duration_seconds{outcome}
//   - modsync_catalog_cache_hits_total, modsync_catalog_cache_misses_total
//   - modsync_updates_found_total
//   - modsync_downloads_total{outcome}
//   - modsync_verifications_total{outcome}
package metrics
