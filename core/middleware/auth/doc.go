// Package auth guards the HTTP API with a static key sent in the X-API-Key
// header. An empty key disables the guard.
package auth
