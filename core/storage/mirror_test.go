package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mod-sync/core/storage"
	"mod-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMirror(client *mocks.Client) *storage.Mirror {
	return storage.NewMirror(client, storage.Config{Bucket: "mods", Prefix: "/archives/"}, zap.NewNop())
}

func TestMirror_Key(t *testing.T) {
	m := newMirror(new(mocks.Client))
	assert.Equal(t, "archives/foo/foo_1.0.0.zip", m.Key("foo", "foo_1.0.0.zip"))
}

func TestMirror_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "mods").Return(true, nil)

		assert.NoError(t, newMirror(client).EnsureBucket(ctx))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "mods").Return(false, nil)
		client.On("MakeBucket", ctx, "mods", minio.MakeBucketOptions{}).Return(nil)

		assert.NoError(t, newMirror(client).EnsureBucket(ctx))
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "mods").Return(false, errors.New("unreachable"))

		assert.ErrorContains(t, newMirror(client).EnsureBucket(ctx), "unreachable")
	})
}

func TestMirror_Upload(t *testing.T) {
	ctx := context.Background()
	local := filepath.Join(t.TempDir(), "foo_1.2.0.zip")
	require.NoError(t, os.WriteFile(local, []byte("archive"), 0644))

	client := new(mocks.Client)
	client.On("PutObject", ctx, "mods", "archives/foo/foo_1.2.0.zip", mock.Anything, int64(7),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "application/zip" && o.UserMetadata["sha1"] == "abc"
		}),
	).Return(minio.UploadInfo{}, nil)

	key, err := newMirror(client).Upload(ctx, "foo", local, "abc")
	require.NoError(t, err)
	assert.Equal(t, "archives/foo/foo_1.2.0.zip", key)
	client.AssertExpectations(t)
}

func TestMirror_UploadMissingFile(t *testing.T) {
	client := new(mocks.Client)
	_, err := newMirror(client).Upload(context.Background(), "foo", filepath.Join(t.TempDir(), "nope.zip"), "")
	assert.Error(t, err)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMirror_List(t *testing.T) {
	ctx := context.Background()

	objects := make(chan minio.ObjectInfo, 3)
	objects <- minio.ObjectInfo{Key: "archives/foo/foo_1.0.0.zip", Size: 10}
	objects <- minio.ObjectInfo{Key: "archives/foo/"}
	objects <- minio.ObjectInfo{Key: "archives/foo/foo_1.1.0.zip", Size: 12}
	close(objects)

	client := new(mocks.Client)
	client.On("ListObjects", ctx, "mods", minio.ListObjectsOptions{Prefix: "archives/foo/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(objects))

	list, err := newMirror(client).List(ctx, "foo")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "archives/foo/foo_1.1.0.zip", list[1].Key)
	assert.Equal(t, int64(12), list[1].Size)
}

func TestMirror_ListError(t *testing.T) {
	ctx := context.Background()

	objects := make(chan minio.ObjectInfo, 1)
	objects <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(objects)

	client := new(mocks.Client)
	client.On("ListObjects", ctx, "mods", mock.Anything).Return((<-chan minio.ObjectInfo)(objects))

	_, err := newMirror(client).List(ctx, "")
	assert.ErrorContains(t, err, "access denied")
}

func TestMirror_ListEmpty(t *testing.T) {
	ctx := context.Background()

	client := new(mocks.Client)
	client.On("ListObjects", ctx, "mods", mock.Anything).Return(nil)

	list, err := newMirror(client).List(ctx, "foo")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
