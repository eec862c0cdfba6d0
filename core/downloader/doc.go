// Package downloader fetches release archives into the mods directory.
//
// Archives are written to a temporary file next to the target and renamed to
// {name}_{version}.zip only after the body was fully received, so a crashed
// or failed download never leaves a truncated archive under the final name.
package downloader
