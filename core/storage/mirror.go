package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Object describes a mirrored archive.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Mirror copies verified archives into a bucket under {prefix}/{name}/{file}.
type Mirror struct {
	client Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewMirror returns a mirror writing to cfg.Bucket.
func NewMirror(client Client, cfg Config, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: logger,
	}
}

// Key returns the object key of an archive.
func (m *Mirror) Key(name, fileName string) string {
	return path.Join(m.prefix, name, fileName)
}

// EnsureBucket creates the bucket when it does not exist yet.
func (m *Mirror) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", m.bucket, err)
	}
	m.logger.Info("Created mirror bucket", zap.String("bucket", m.bucket))
	return nil
}

// Upload stores the archive at localPath and returns its object key.
// sha1 is attached as object metadata when known.
func (m *Mirror) Upload(ctx context.Context, name, localPath, sha1 string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat archive: %w", err)
	}

	key := m.Key(name, path.Base(localPath))
	opts := minio.PutObjectOptions{ContentType: "application/zip"}
	if sha1 != "" {
		opts.UserMetadata = map[string]string{"sha1": sha1}
	}

	if _, err := m.client.PutObject(ctx, m.bucket, key, f, info.Size(), opts); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	m.logger.Debug("Mirrored archive", zap.String("key", key), zap.Int64("size", info.Size()))
	return key, nil
}

// List returns the mirrored archives of a mod, or of every mod when name is empty.
func (m *Mirror) List(ctx context.Context, name string) ([]Object, error) {
	prefix := m.prefix
	if name != "" {
		prefix = path.Join(m.prefix, name)
	}
	if prefix != "" {
		prefix += "/"
	}

	out := []Object{}
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		out = append(out, Object{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return out, nil
}
