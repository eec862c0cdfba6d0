// Package logger builds the zap logger every command and service receives.
//
// New is called once per command from the log section of the configuration
// and the result is passed down as a *zap.Logger argument. Core engine
// packages never log; the pipeline services and HTTP handlers do.
//
// # Configuration
//
//   - Level: debug, info, warn or error. debug also switches to zap's
//     development config with ISO8601 timestamps.
//   - Format: console for terminals, json for log collectors.
//
// # Requests
//
// WithRayID tags a logger with the X-Ray-ID assigned by the rayid middleware,
// so every line written while serving one request under serve shares a ray_id.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	svc := updates.NewService(scan, cat, engine, dl, pool, log)
//
//	// In a handler:
//	l := logger.WithRayID(log, c)
//	l.Warn("Mirror listing failed", zap.String("mod", name))
package logger
