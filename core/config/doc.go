// Package config loads the application settings.
//
// Values come from a .env key/value file (loaded with godotenv) and from
// environment variables, read through Viper. Every field carries its default
// in a struct tag, and nested keys map to SECTION_KEY variables
// (e.g. CATALOG_BASE_URL -> catalog.base_url).
//
// After unmarshalling, each section is checked with gookit/validate using the
// fields' validate tags; optional sections are only checked when enabled.
//
// # Sections
//
//   - Mods: mods directory, ignore file, download directory
//   - Catalog: portal URL, request timeout, response cache, credentials
//   - Download: mirror URL template or official downloads
//   - Sync: worker count and release ordering policy
//   - Server, Log, Storage, Database, Metrics
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Mods.Dir)
package config
