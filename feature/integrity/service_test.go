package integrity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"mod-sync/core/errdefs"
	"mod-sync/core/models"
	"mod-sync/core/scanner"
	"mod-sync/core/storage"
	"mod-sync/core/storage/mocks"
	"mod-sync/core/workerpool"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const helloWorldSHA1 = "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"

type fakeFetcher struct {
	mods map[string]*models.Mod
	errs map[string]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, name string) (*models.Mod, error) {
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	m, ok := f.mods[name]
	if !ok {
		return nil, fmt.Errorf("mod %s: %w", name, errdefs.ErrNotFound)
	}
	return m.Clone(), nil
}

func remoteMod(name string, releases ...models.Release) *models.Mod {
	m := models.NewMod(name)
	for _, r := range releases {
		m.AddRelease(r)
	}
	return m
}

func writeArchives(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func newTestService(t *testing.T, dir string, fetcher *fakeFetcher, opts ...Option) *Service {
	t.Helper()
	pool := workerpool.New(2)
	scan := scanner.New(dir, nil, pool, zap.NewNop())
	return NewService(scan, fetcher, pool, dir, zap.NewNop(), opts...)
}

func TestVerifyArchives(t *testing.T) {
	dir := writeArchives(t, map[string]string{
		"alpha_1.0.0.zip": "hello world",
		"beta_2.0.0.zip":  "tampered",
		"gamma_1.0.0.zip": "old",
		"delta_0.1.0.zip": "private",
		"omega_3.0.0.zip": "x",
	})
	fetcher := &fakeFetcher{
		mods: map[string]*models.Mod{
			"alpha": remoteMod("alpha", models.Release{Version: "1.0.0", SHA1: helloWorldSHA1}),
			"beta":  remoteMod("beta", models.Release{Version: "2.0.0", SHA1: helloWorldSHA1}),
			"gamma": remoteMod("gamma", models.Release{Version: "1.1.0", SHA1: helloWorldSHA1}),
		},
		errs: map[string]error{"omega": fmt.Errorf("timeout: %w", errdefs.ErrTransient)},
	}
	svc := newTestService(t, dir, fetcher)

	report, err := svc.VerifyArchives(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Archives, 5)

	byName := map[string]ArchiveCheck{}
	for _, a := range report.Archives {
		byName[a.Name] = a
	}

	assert.Equal(t, StatusOK, byName["alpha"].Status)
	assert.Equal(t, helloWorldSHA1, byName["alpha"].LocalSHA1)
	assert.Equal(t, StatusMismatch, byName["beta"].Status)
	assert.Equal(t, helloWorldSHA1, byName["beta"].CatalogSHA1)
	assert.Equal(t, StatusUnknownVersion, byName["gamma"].Status)
	assert.Equal(t, StatusNotFound, byName["delta"].Status)
	assert.Equal(t, StatusFailed, byName["omega"].Status)
	assert.Contains(t, byName["omega"].Error, "timeout")

	assert.Equal(t, Summary{Total: 5, OK: 1, Mismatched: 1, Unknown: 1, NotFound: 1, Failed: 1}, report.Summary)
	assert.False(t, report.Healthy())
}

func TestVerifyArchives_Healthy(t *testing.T) {
	dir := writeArchives(t, map[string]string{"alpha_1.0.0.zip": "hello world"})
	fetcher := &fakeFetcher{mods: map[string]*models.Mod{
		"alpha": remoteMod("alpha", models.Release{Version: "1.0.0", SHA1: "2AAE6C35C94FCFB415DBE95F408B9CE91EE846ED"}),
	}}

	report, err := newTestService(t, dir, fetcher).VerifyArchives(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Healthy())
}

func TestVerifyArchives_MissingDirectory(t *testing.T) {
	svc := newTestService(t, filepath.Join(t.TempDir(), "missing"), &fakeFetcher{})

	_, err := svc.VerifyArchives(context.Background())
	assert.Error(t, err)
}

func objectsChan(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k, Size: 1}
	}
	close(ch)
	return ch
}

func withPrefix(prefix string) interface{} {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool { return opts.Prefix == prefix })
}

func TestMirror_CheckAndFix(t *testing.T) {
	dir := writeArchives(t, map[string]string{
		"alpha_1.0.0.zip": "hello world",
		"beta_2.0.0.zip":  "12345678",
	})
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "mods", withPrefix("archives/alpha/")).
		Return(objectsChan("archives/alpha/alpha_1.0.0.zip"))
	client.On("ListObjects", mock.Anything, "mods", withPrefix("archives/beta/")).
		Return(objectsChan())
	client.On("PutObject", mock.Anything, "mods", "archives/beta/beta_2.0.0.zip", mock.Anything, int64(8), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	mirror := storage.NewMirror(client, storage.Config{Bucket: "mods", Prefix: "archives"}, zap.NewNop())
	svc := newTestService(t, dir, &fakeFetcher{}, WithMirror(mirror))

	gaps, err := svc.CheckMirror(context.Background())
	require.NoError(t, err)
	require.Len(t, gaps, 1)
	assert.Equal(t, "beta_2.0.0.zip", gaps[0].FileName)

	require.NoError(t, svc.FixMirror(context.Background(), gaps))
	client.AssertExpectations(t)
}

func TestMirror_NotConfigured(t *testing.T) {
	svc := newTestService(t, t.TempDir(), &fakeFetcher{})

	_, err := svc.CheckMirror(context.Background())
	assert.ErrorIs(t, err, errdefs.ErrValidation)
	assert.ErrorIs(t, svc.FixMirror(context.Background(), nil), errdefs.ErrValidation)
}

type fakeSchema struct {
	missing []string
	err     error
}

func (f fakeSchema) MissingColumns() ([]string, error) { return f.missing, f.err }

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		status  string
		missing []string
		wantErr bool
	}{
		{name: "disabled", status: "disabled", missing: []string{}},
		{name: "ok", opts: []Option{WithSchema(fakeSchema{})}, status: "ok", missing: []string{}},
		{name: "drift", opts: []Option{WithSchema(fakeSchema{missing: []string{"mirror_key"}})}, status: "drift", missing: []string{"mirror_key"}},
		{name: "error", opts: []Option{WithSchema(fakeSchema{err: errors.New("db down")})}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := newTestService(t, t.TempDir(), &fakeFetcher{}, tt.opts...).CheckSchema()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, report.Status)
			assert.Equal(t, tt.missing, report.Missing)
		})
	}
}
