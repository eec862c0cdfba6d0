package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mod-sync/core/errdefs"
	"mod-sync/core/metrics"
	"mod-sync/core/models"
	"mod-sync/core/retry"

	"github.com/coocood/freecache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// maxBodyBytes caps a single catalog document.
const maxBodyBytes = 32 << 20

// Fetcher retrieves the full remote record of a mod.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (*models.Mod, error)
}

// StatusError is returned for non-200 catalog responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog returned HTTP %d for %s", e.StatusCode, e.URL)
}

// Unwrap classifies the status: 404/410 are ErrNotFound, 429 and 5xx are
// ErrTransient, anything else is permanent and unclassified.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone:
		return errdefs.ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500:
		return errdefs.ErrTransient
	default:
		return nil
	}
}

// Client reads mod documents from the catalog HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	policy  retry.Policy
	cache   *freecache.Cache
	ttl     int
	group   singleflight.Group
	logger  *zap.Logger
	metrics metrics.Recorder
}

// NewClient builds a catalog client. rec may be nil.
func NewClient(cfg Config, logger *zap.Logger, rec metrics.Recorder) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.Noop{}
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: NewTransport(timeoutDuration)},
		policy:  retry.Policy{Attempts: retry.Once.Attempts, Timeout: timeoutDuration, Backoff: retry.Once.Backoff},
		ttl:     cfg.CacheTTLSeconds,
		logger:  logger,
		metrics: rec,
	}
	if cfg.CacheMB > 0 {
		c.cache = freecache.NewCache(cfg.CacheMB * 1024 * 1024)
	}
	return c
}

// NewTransport returns a transport whose dial, TLS and header waits are bounded by timeout.
func NewTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
}

// Fetch returns a freshly decoded record for name. Concurrent calls for the
// same name share one request, and successful bodies are cached for the TTL.
// Every caller receives its own *models.Mod.
func (c *Client) Fetch(ctx context.Context, name string) (*models.Mod, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: mod name is required", errdefs.ErrValidation)
	}

	if body, ok := c.cached(name); ok {
		c.metrics.IncCacheHits()
		return models.DecodeMod(body)
	}
	c.metrics.IncCacheMisses()

	start := time.Now()
	v, err, shared := c.group.Do(name, func() (any, error) {
		return c.download(ctx, name)
	})
	c.metrics.ObserveFetch(fetchOutcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("Catalog fetch shared", zap.String("mod", name))
	}

	return models.DecodeMod(v.([]byte))
}

// ModURL returns the document URL for name.
func (c *Client) ModURL(name string) string {
	return fmt.Sprintf("%s/api/mods/%s/full", c.baseURL, url.PathEscape(name))
}

func (c *Client) download(ctx context.Context, name string) ([]byte, error) {
	target := c.ModURL(name)

	var body []byte
	err := retry.Do(ctx, c.policy, func(ctx context.Context) error {
		b, err := c.get(ctx, target)
		if err != nil {
			c.logger.Debug("Catalog request failed", zap.String("mod", name), zap.Error(err))
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}

	if c.cache != nil {
		if err := c.cache.Set([]byte(name), body, c.ttl); err != nil {
			c.logger.Debug("Catalog response not cached", zap.String("mod", name), zap.Error(err))
		}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of %s: %v", errdefs.ErrTransient, target, err)
	}
	return body, nil
}

func (c *Client) cached(name string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, err := c.cache.Get([]byte(name))
	if err != nil {
		return nil, false
	}
	return body, true
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, errdefs.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeFailed
	}
}
