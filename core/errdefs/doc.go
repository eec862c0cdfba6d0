// Package errdefs defines the error taxonomy shared by the sync engine.
//
// Every failure surfaced by a core operation wraps exactly one of the sentinels
// below, so callers classify with errors.Is instead of string matching:
//
//   - ErrValidation: malformed input (mismatched mod names, missing JSON field). Fails fast.
//   - ErrIntegrity: downloaded content does not match the catalog hash.
//   - ErrTransient: network or read failure eligible for a single retry.
//   - ErrNotFound: the catalog has no such mod, or a hash lookup found nothing.
package errdefs
