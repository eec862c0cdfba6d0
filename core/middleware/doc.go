// Package middleware groups the HTTP middleware used by the serve command.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting every route except the health check.
//   - rayid: assigns each request a ray ID, stored on the context and echoed in
//     the X-Ray-ID response header, so log lines can be correlated.
package middleware
