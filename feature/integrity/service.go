package integrity

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"mod-sync/core/catalog"
	"mod-sync/core/errdefs"
	"mod-sync/core/models"
	"mod-sync/core/scanner"
	"mod-sync/core/storage"
	"mod-sync/core/workerpool"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LocalSource provides the installed mods with computed hashes.
type LocalSource interface {
	Scan(ctx context.Context) (*scanner.Result, error)
}

// Mirror is the object storage copy of installed archives.
type Mirror interface {
	Upload(ctx context.Context, name, localPath, sha1 string) (string, error)
	List(ctx context.Context, name string) ([]storage.Object, error)
}

// SchemaChecker reports history columns missing from the database.
type SchemaChecker interface {
	MissingColumns() ([]string, error)
}

// Service handles integrity checks.
type Service struct {
	local   LocalSource
	fetcher catalog.Fetcher
	pool    *workerpool.Pool
	modsDir string
	logger  *zap.Logger

	mirror Mirror
	schema SchemaChecker
}

// Option configures optional collaborators.
type Option func(*Service)

// WithMirror enables the mirror coverage check.
func WithMirror(m Mirror) Option {
	return func(s *Service) { s.mirror = m }
}

// WithSchema enables the history schema check.
func WithSchema(c SchemaChecker) Option {
	return func(s *Service) { s.schema = c }
}

// NewService creates a new integrity service. modsDir is where installed
// archives live and is used to re-upload mirror gaps.
func NewService(local LocalSource, fetcher catalog.Fetcher, pool *workerpool.Pool, modsDir string, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		local:   local,
		fetcher: fetcher,
		pool:    pool,
		modsDir: modsDir,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = workerpool.New(0)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// VerifyArchives compares the hash of every installed archive with the
// catalog hash of the same version.
func (s *Service) VerifyArchives(ctx context.Context) (*Report, error) {
	scanned, err := s.local.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan installed mods: %w", err)
	}

	report := &Report{Archives: []ArchiveCheck{}, ScanFailures: make(map[string]string)}
	for name, scanErr := range scanned.Failures {
		report.ScanFailures[name] = scanErr.Error()
	}

	byName := make(map[string]*models.Mod, len(scanned.Mods))
	names := make([]string, 0, len(scanned.Mods))
	for _, m := range scanned.Mods {
		byName[m.Name] = m
		names = append(names, m.Name)
	}

	settled := workerpool.Settle(ctx, s.pool, names, func(ctx context.Context, name string) ([]ArchiveCheck, error) {
		return s.verifyMod(ctx, byName[name]), nil
	})
	for _, r := range settled {
		if r.Err != nil {
			report.ScanFailures[r.Key] = r.Err.Error()
			continue
		}
		report.Archives = append(report.Archives, r.Value...)
	}

	report.summarize()
	return report, nil
}

func (s *Service) verifyMod(ctx context.Context, local *models.Mod) []ArchiveCheck {
	checks := make([]ArchiveCheck, len(local.Releases))
	for i, rel := range local.Releases {
		checks[i] = ArchiveCheck{Name: local.Name, Version: rel.Version, FileName: rel.FileName, LocalSHA1: rel.SHA1}
	}
	if len(checks) == 0 {
		return checks
	}

	remote, err := s.fetcher.Fetch(ctx, local.Name)
	if err != nil {
		status := StatusFailed
		if errors.Is(err, errdefs.ErrNotFound) {
			status = StatusNotFound
		} else {
			s.logger.Error("Catalog lookup failed", zap.String("mod", local.Name), zap.Error(err))
		}
		for i := range checks {
			checks[i].Status = status
			if status == StatusFailed {
				checks[i].Error = err.Error()
			}
		}
		return checks
	}

	for i := range checks {
		c := &checks[i]
		published, ok := remote.FindRelease(c.Version)
		switch {
		case !ok || published.SHA1 == "":
			c.Status = StatusUnknownVersion
		case strings.EqualFold(published.SHA1, c.LocalSHA1):
			c.CatalogSHA1 = published.SHA1
			c.Status = StatusOK
		default:
			c.CatalogSHA1 = published.SHA1
			c.Status = StatusMismatch
			s.logger.Warn("Installed archive differs from catalog",
				zap.String("mod", c.Name),
				zap.String("file", c.FileName),
				zap.String("local_sha1", c.LocalSHA1),
				zap.String("catalog_sha1", c.CatalogSHA1),
			)
		}
	}
	return checks
}

// CheckMirror lists installed archives with no copy in the mirror.
func (s *Service) CheckMirror(ctx context.Context) ([]MirrorGap, error) {
	if s.mirror == nil {
		return nil, fmt.Errorf("%w: mirror is not configured", errdefs.ErrValidation)
	}

	scanned, err := s.local.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan installed mods: %w", err)
	}

	perMod := make([][]MirrorGap, len(scanned.Mods))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.pool.Size())
	for i, m := range scanned.Mods {
		i, m := i, m
		g.Go(func() error {
			objects, err := s.mirror.List(gctx, m.Name)
			if err != nil {
				return err
			}
			have := make(map[string]bool, len(objects))
			for _, o := range objects {
				have[path.Base(o.Key)] = true
			}
			for _, rel := range m.Releases {
				if !have[rel.FileName] {
					perMod[i] = append(perMod[i], MirrorGap{Name: m.Name, FileName: rel.FileName, SHA1: rel.SHA1})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gaps := []MirrorGap{}
	for _, mg := range perMod {
		gaps = append(gaps, mg...)
	}
	return gaps, nil
}

// FixMirror uploads the given gaps from the mods directory.
func (s *Service) FixMirror(ctx context.Context, gaps []MirrorGap) error {
	if s.mirror == nil {
		return fmt.Errorf("%w: mirror is not configured", errdefs.ErrValidation)
	}

	var errs []error
	for _, g := range gaps {
		key, err := s.mirror.Upload(ctx, g.Name, filepath.Join(s.modsDir, g.FileName), g.SHA1)
		if err != nil {
			s.logger.Error("Failed to upload archive", zap.String("file", g.FileName), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		s.logger.Info("Uploaded missing archive", zap.String("key", key))
	}
	return errors.Join(errs...)
}

// CheckSchema reports history columns missing from the database.
func (s *Service) CheckSchema() (*SchemaReport, error) {
	if s.schema == nil {
		return &SchemaReport{Status: "disabled", Missing: []string{}}, nil
	}

	missing, err := s.schema.MissingColumns()
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return &SchemaReport{Status: "ok", Missing: []string{}}, nil
	}
	return &SchemaReport{Status: "drift", Missing: missing}, nil
}
