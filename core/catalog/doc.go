// Package catalog reads mod records from the remote mod portal.
//
// Each request attempt is bounded by the configured timeout and a failed
// attempt is retried once when the failure is transient (network error,
// HTTP 429 or 5xx). A 404 is reported as errdefs.ErrNotFound and never retried.
//
// Raw response bodies are kept in a freecache byte cache for a short TTL and
// concurrent fetches of the same mod share a single request. Callers always
// receive a freshly decoded *models.Mod, so mutating one never affects another.
package catalog
