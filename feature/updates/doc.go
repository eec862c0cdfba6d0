// Package updates runs the mod synchronization pipeline.
//
// A run scans the installed mods, fetches each mod's catalog record, and
// reconciles the two under the configured ordering policy. Mods with a newer
// release are downloaded, checked against the catalog SHA-1, optionally
// mirrored to object storage and recorded in the download history.
//
// Every per-mod stage runs on one shared worker pool. A failing mod never
// aborts the run; its failure is captured in the Report.
//
// # HTTP Endpoints
//
//   - GET /updates : Check for updates.
//   - POST /updates/sync : Check and download (supports ?dry_run=true).
//   - GET /updates/history/:name : Recent downloads, optionally for one mod.
//   - GET /updates/changelog/:name : Changelog entries newer than the installed release.
//   - GET /updates/mirror/:name : Archives held in the mirror.
package updates
