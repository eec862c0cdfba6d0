package catalog

// Config holds configuration for the remote mod catalog.
type Config struct {
	// BaseURL is the catalog root; mods are read from {BaseURL}/api/mods/{name}/full.
	BaseURL string `mapstructure:"base_url" default:"https://mods.factorio.com" validate:"required|fullUrl"`
	// TimeoutSeconds bounds each request attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10" validate:"min:1"`
	// CacheMB is the size of the in-memory response cache. Zero disables it.
	CacheMB int `mapstructure:"cache_mb" default:"16" validate:"min:0"`
	// CacheTTLSeconds is how long a cached response stays valid.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300" validate:"min:0"`
	// Username and Token authenticate official downloads.
	Username string `mapstructure:"username" default:""`
	Token    string `mapstructure:"token" default:""`
}
