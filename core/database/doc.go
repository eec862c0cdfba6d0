// Package database opens the optional download history database.
//
// It wraps GORM with either the MySQL or the SQLite driver depending on
// configuration, applies pool settings and verifies the connection with a
// bounded ping.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table definition so callers
// can report drift between the history model and an externally managed schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History database unavailable", zap.Error(err))
//	}
package database
