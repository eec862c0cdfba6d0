package metrics

// Config holds configuration for Prometheus metrics.
type Config struct {
	// Enabled exposes counters on /metrics when serving and records them during runs.
	Enabled bool `mapstructure:"enabled" default:"false"`
}
