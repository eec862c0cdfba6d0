// Package models holds the mod and release records shared by the scanner,
// the catalog client and the reconciliation engine.
//
// # Release selection
//
// "Latest" is always decided by an Ordering passed in by the caller, never by
// ad hoc comparisons at each call site:
//
//   - VersionPriority (default): version descending, ties broken by release time.
//   - TimestampPriority: release time only; valid once every release has a time.
//
// Unparseable versions rank below every parseable one. Full ties keep the
// release that appears first in stored order.
//
// # Decoding
//
// DecodeMod reads a catalog document with explicit Optional fields, so an
// absent key, an explicit null and a real value stay distinguishable.
package models
