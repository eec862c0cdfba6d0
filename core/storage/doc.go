// Package storage mirrors downloaded mod archives to S3-compatible object storage.
//
// It wraps the MinIO Go client behind a small Client interface so the mirror
// can be tested with the testify mock in core/storage/mocks. Works with AWS S3
// and self-hosted MinIO.
//
// # Layout
//
// Archives are stored as {prefix}/{mod}/{mod}_{version}.zip with the archive's
// SHA-1 attached as user metadata.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	mirror := storage.NewMirror(client, cfg.Storage, log)
//	key, err := mirror.Upload(ctx, "foo", "/mods/foo_1.2.0.zip", sum)
package storage
