package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"mod-sync/core/errdefs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fooDoc = `{
  "name": "foo",
  "title": "Foo",
  "releases": [
    {"version": "1.0.0", "sha1": "a", "released_at": "2023-01-01T00:00:00Z"},
    {"version": "1.2.0", "sha1": "b", "released_at": "2024-01-01T00:00:00Z"}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, cacheMB int) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, TimeoutSeconds: 2, CacheMB: cacheMB, CacheTTLSeconds: 60}, zap.NewNop(), nil)
	c.policy.Backoff = 0
	return c, &hits
}

func TestFetch_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mods/foo/full", r.URL.Path)
		fmt.Fprint(w, fooDoc)
	}, 0)

	mod, err := c.Fetch(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", mod.Name)
	assert.Equal(t, "Foo", mod.Title)
	assert.Len(t, mod.Releases, 2)
}

func TestFetch_CachedAndIndependent(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fooDoc)
	}, 1)

	first, err := c.Fetch(context.Background(), "foo")
	require.NoError(t, err)
	first.Releases = nil
	first.Title = "mutated"

	second, err := c.Fetch(context.Background(), "foo")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, "Foo", second.Title)
	assert.Len(t, second.Releases, 2)
}

func TestFetch_NotFoundIsNotRetried(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, 0)

	_, err := c.Fetch(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFetch_RetriesServerErrorOnce(t *testing.T) {
	var calls int32
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, fooDoc)
	}, 0)

	mod, err := c.Fetch(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", mod.Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestFetch_GivesUpAfterSecondFailure(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 0)

	_, err := c.Fetch(context.Background(), "foo")
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrTransient)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestFetch_MalformedDocument(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"title": "no name"}`)
	}, 0)

	_, err := c.Fetch(context.Background(), "foo")
	assert.ErrorIs(t, err, errdefs.ErrValidation)
}

func TestFetch_EmptyName(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, 0)

	_, err := c.Fetch(context.Background(), " ")
	assert.ErrorIs(t, err, errdefs.ErrValidation)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestStatusError_Classification(t *testing.T) {
	tests := []struct {
		code      int
		notFound  bool
		transient bool
	}{
		{http.StatusNotFound, true, false},
		{http.StatusGone, true, false},
		{http.StatusTooManyRequests, false, true},
		{http.StatusInternalServerError, false, true},
		{http.StatusForbidden, false, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := &StatusError{URL: "u", StatusCode: tt.code}
			assert.Equal(t, tt.notFound, errors.Is(err, errdefs.ErrNotFound))
			assert.Equal(t, tt.transient, errdefs.IsRetryable(err))
		})
	}
}

func TestModURL(t *testing.T) {
	c := NewClient(Config{BaseURL: "https://mods.example.com/"}, nil, nil)
	assert.Equal(t, "https://mods.example.com/api/mods/Krastorio%202/full", c.ModURL("Krastorio 2"))
}
