// Package server holds the HTTP server configuration.
//
// The serve command reads the listen port, the optional API key guarding
// every route except the health check, and the read/write timeouts from
// this package's Config.
package server
