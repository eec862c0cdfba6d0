package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mod-sync/core/catalog"
	"mod-sync/core/errdefs"
	"mod-sync/core/models"
	"mod-sync/core/retry"
	"mod-sync/core/scanner"

	"go.uber.org/zap"
)

// Downloader fetches release archives into a target directory.
type Downloader struct {
	dir         string
	template    string
	official    bool
	catalogBase string
	username    string
	token       string
	http        *http.Client
	policy      retry.Policy
	logger      *zap.Logger
	anticache   func() int
}

// New returns a downloader writing into dir. The catalog settings supply the
// official host and credentials when cfg.UseOfficial is set.
func New(cfg Config, cat catalog.Config, dir string, logger *zap.Logger) *Downloader {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 120
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Downloader{
		dir:         dir,
		template:    cfg.URLTemplate,
		official:    cfg.UseOfficial,
		catalogBase: strings.TrimRight(cat.BaseURL, "/"),
		username:    cat.Username,
		token:       cat.Token,
		http:        &http.Client{Transport: catalog.NewTransport(30 * time.Second)},
		policy:      retry.Policy{Attempts: retry.Once.Attempts, Timeout: timeoutDuration, Backoff: retry.Once.Backoff},
		logger:      logger,
		anticache:   func() int { return rand.Intn(1_000_000_000) + 1 },
	}
}

// Dir returns the target directory.
func (d *Downloader) Dir() string {
	return d.dir
}

// Path returns where the archive of name@version is written.
func (d *Downloader) Path(name, version string) string {
	return filepath.Join(d.dir, scanner.ArchiveName(name, version))
}

// URL resolves the download location of a release.
func (d *Downloader) URL(name string, rel models.Release) (string, error) {
	if name == "" || rel.Version == "" {
		return "", fmt.Errorf("%w: mod name and version must be provided", errdefs.ErrValidation)
	}

	if d.official {
		if rel.DownloadURL == "" {
			return "", fmt.Errorf("%w: release %s@%s has no download_url", errdefs.ErrValidation, name, rel.Version)
		}
		if d.username == "" || d.token == "" {
			return "", fmt.Errorf("%w: official downloads require catalog username and token", errdefs.ErrValidation)
		}
		q := url.Values{}
		q.Set("username", d.username)
		q.Set("token", d.token)
		return d.catalogBase + rel.DownloadURL + "?" + q.Encode(), nil
	}

	u := strings.NewReplacer(
		"{name}", url.PathEscape(name),
		"{version}", url.PathEscape(rel.Version),
	).Replace(d.template)

	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "anticache=" + strconv.Itoa(d.anticache()), nil
}

// Download writes the archive of name@rel.Version to Path and returns it.
// The file only appears under its final name once fully written; an empty
// body counts as a failed attempt. One retry is made on transient failures.
func (d *Downloader) Download(ctx context.Context, name string, rel models.Release) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	target := d.Path(name, rel.Version)
	err := retry.Do(ctx, d.policy, func(ctx context.Context) error {
		// Fresh URL per attempt so the anticache value changes.
		u, err := d.URL(name, rel)
		if err != nil {
			return err
		}
		if err := d.fetch(ctx, u, target); err != nil {
			d.logger.Warn("Download attempt failed",
				zap.String("mod", name),
				zap.String("version", rel.Version),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("downloading %s@%s: %w", name, rel.Version, err)
	}
	return target, nil
}

func (d *Downloader) fetch(ctx context.Context, u, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redact(urlErr.URL)
		}
		return fmt.Errorf("%w: %v", errdefs.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &catalog.StatusError{URL: redact(u), StatusCode: resp.StatusCode}
	}

	tmp, err := os.CreateTemp(d.dir, "."+filepath.Base(target)+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", errdefs.ErrTransient, target, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: downloaded file %s is empty", errdefs.ErrTransient, filepath.Base(target))
	}

	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	return nil
}

// redact drops the query string so credentials never reach logs or errors.
func redact(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		return u[:i]
	}
	return u
}
