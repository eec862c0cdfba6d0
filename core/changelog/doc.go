// Package changelog parses the changelog text published with a mod.
//
// Entries are separated by runs of ten or more dashes. Each entry opens with
// a "Version:" line and a "Date:" line. In the body, a line holding only a
// heading and a trailing colon (e.g. "Bugfixes:") opens a section, and the
// lines below it, with any leading "-" bullet removed, belong to it. Blocks
// that do not fit this shape are skipped rather than failing the whole parse.
package changelog
