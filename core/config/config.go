package config

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"mod-sync/core/catalog"
	"mod-sync/core/database"
	"mod-sync/core/downloader"
	"mod-sync/core/errdefs"
	"mod-sync/core/logger"
	"mod-sync/core/metrics"
	"mod-sync/core/scanner"
	"mod-sync/core/server"
	"mod-sync/core/storage"

	"github.com/gookit/validate"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Mods locates the installed mods and the ignore list.
	Mods scanner.Config `mapstructure:"mods"`
	// Catalog holds the remote mod portal settings.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Download selects where archives are fetched from.
	Download downloader.Config `mapstructure:"download"`
	// Sync tunes the update pipeline.
	Sync SyncConfig `mapstructure:"sync"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the optional archive mirror.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional download history.
	Database database.Config `mapstructure:"database"`
	// Metrics toggles Prometheus collection.
	Metrics metrics.Config `mapstructure:"metrics"`
}

// SyncConfig tunes the update pipeline.
type SyncConfig struct {
	// Workers bounds concurrent hashing, fetching and downloading. 0 means 2 x CPU count.
	Workers int `mapstructure:"workers" default:"0" validate:"min:0"`
	// Policy is the release ordering: version or timestamp.
	Policy string `mapstructure:"policy" default:"version" validate:"in:version,timestamp"`
}

// PoolSize resolves Workers to a concrete width.
func (s SyncConfig) PoolSize() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return 2 * runtime.NumCPU()
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Sync.Policy = strings.ToLower(strings.TrimSpace(config.Sync.Policy))
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks every section against its validate tags. Storage and
// database are only checked when enabled.
func (c *Config) Validate() error {
	sections := []struct {
		name    string
		value   any
		enabled bool
	}{
		{"mods", &c.Mods, true},
		{"catalog", &c.Catalog, true},
		{"download", &c.Download, !c.Download.UseOfficial},
		{"sync", &c.Sync, true},
		{"server", &c.Server, true},
		{"log", &c.Log, true},
		{"storage", &c.Storage, c.Storage.Enabled},
		{"database", &c.Database, c.Database.Enabled},
	}

	for _, s := range sections {
		if !s.enabled {
			continue
		}
		v := validate.Struct(s.value)
		if !v.Validate() {
			return fmt.Errorf("%w: invalid %s config: %s", errdefs.ErrValidation, s.name, v.Errors.One())
		}
	}

	if c.Download.UseOfficial && (c.Catalog.Username == "" || c.Catalog.Token == "") {
		return fmt.Errorf("%w: download.use_official requires catalog.username and catalog.token", errdefs.ErrValidation)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
