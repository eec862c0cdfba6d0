package downloader

// Config holds configuration for archive downloads.
type Config struct {
	// URLTemplate is the mirror URL; {name} and {version} are substituted and
	// an anticache query parameter is appended.
	URLTemplate string `mapstructure:"url_template" default:"https://mods-storage.re146.dev/{name}/{version}.zip" validate:"required"`
	// UseOfficial downloads from the catalog's own download_url with credentials instead of the mirror.
	UseOfficial bool `mapstructure:"use_official" default:"false"`
	// TimeoutSeconds bounds each download attempt, body transfer included.
	// Response headers must still arrive within 30s.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120" validate:"min:1"`
}
