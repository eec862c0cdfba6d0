// Package integrity checks that the installed mods are what the catalog says they are.
//
// Unlike the updates package, which verifies freshly downloaded archives,
// this package re-verifies archives already on disk and the infrastructure
// around them.
//
// # Checks Provided
//
//   - Archives: Hashes every installed archive and compares it with the catalog SHA-1 of the same version.
//   - Mirror: Lists installed archives with no copy in the mirror bucket.
//   - Schema: Validates that the download history table has every expected column.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs the archive check.
//   - GET /integrity/mirror : Runs the mirror check (supports ?fix=true).
//   - GET /integrity/schema : Runs the history schema check.
package integrity
