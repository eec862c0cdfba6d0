package updates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"mod-sync/core/catalog"
	"mod-sync/core/changelog"
	"mod-sync/core/errdefs"
	"mod-sync/core/hasher"
	"mod-sync/core/metrics"
	"mod-sync/core/models"
	"mod-sync/core/reconcile"
	"mod-sync/core/scanner"
	"mod-sync/core/storage"
	"mod-sync/core/version"
	"mod-sync/core/workerpool"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalSource provides the installed mods.
type LocalSource interface {
	Scan(ctx context.Context) (*scanner.Result, error)
	ScanMod(ctx context.Context, name string) (*models.Mod, error)
}

// Downloader writes a release archive to disk and returns its path.
type Downloader interface {
	Download(ctx context.Context, name string, rel models.Release) (string, error)
}

// Mirror copies verified archives to object storage.
type Mirror interface {
	Upload(ctx context.Context, name, localPath, sha1 string) (string, error)
	List(ctx context.Context, name string) ([]storage.Object, error)
}

// Service drives the check, download, verify, mirror and record pipeline
// across every installed mod on one shared worker pool.
type Service struct {
	local      LocalSource
	fetcher    catalog.Fetcher
	engine     *reconcile.Engine
	downloader Downloader
	pool       *workerpool.Pool
	logger     *zap.Logger

	mirror  Mirror
	history History
	metrics metrics.Recorder
}

// Option configures optional collaborators.
type Option func(*Service)

// WithMirror uploads every verified download.
func WithMirror(m Mirror) Option {
	return func(s *Service) { s.mirror = m }
}

// WithHistory records every download attempt.
func WithHistory(h History) Option {
	return func(s *Service) { s.history = h }
}

// WithMetrics reports pipeline counters.
func WithMetrics(m metrics.Recorder) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a new updates service.
func NewService(local LocalSource, fetcher catalog.Fetcher, engine *reconcile.Engine, downloader Downloader, pool *workerpool.Pool, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		local:      local,
		fetcher:    fetcher,
		engine:     engine,
		downloader: downloader,
		pool:       pool,
		logger:     logger,
		metrics:    metrics.Noop{},
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

// Reconcile fetches the remote record of every local mod and reconciles the
// pair. Per-mod failures are captured in the returned checks, in input order.
func (s *Service) Reconcile(ctx context.Context, mods []*models.Mod) []Check {
	byName := make(map[string]*models.Mod, len(mods))
	names := make([]string, 0, len(mods))
	for _, m := range mods {
		byName[m.Name] = m
		names = append(names, m.Name)
	}

	settled := workerpool.Settle(ctx, s.pool, names, func(ctx context.Context, name string) (Check, error) {
		return s.checkMod(ctx, byName[name])
	})

	checks := make([]Check, len(settled))
	for i, r := range settled {
		if r.Err != nil {
			checks[i] = failedCheck(r.Key, r.Err)
			continue
		}
		checks[i] = r.Value
	}
	return checks
}

func (s *Service) checkMod(ctx context.Context, local *models.Mod) (Check, error) {
	check := Check{Name: local.Name}

	remote, err := s.fetcher.Fetch(ctx, local.Name)
	if errors.Is(err, errdefs.ErrNotFound) {
		check.Status = StatusNotFound
		return check, nil
	}
	if err != nil {
		return Check{}, err
	}

	result, err := s.engine.Reconcile(local, remote)
	if err != nil {
		return Check{}, err
	}

	if result.Current != nil {
		check.Current = result.Current.Version
	}
	check.Incomparable = result.Incomparable
	check.Status = StatusUpToDate

	if result.HasUpdate() {
		target, _ := result.Update.LatestRelease(s.engine.Ordering())
		check.Target = &target
		check.Versions = result.Versions()
		check.Status = StatusUpdateAvailable
	}
	return check, nil
}

func failedCheck(name string, err error) Check {
	return Check{Name: name, Status: StatusFailed, Err: err, Error: err.Error()}
}

// CheckUpdates scans the installed mods and reconciles each against the catalog.
// It only fails when the mods directory itself cannot be read.
func (s *Service) CheckUpdates(ctx context.Context) (*Report, error) {
	report := s.newReport(false)

	scanned, err := s.local.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan installed mods: %w", err)
	}
	for name, scanErr := range scanned.Failures {
		report.ScanFailures[name] = scanErr.Error()
	}

	report.Checks = s.Reconcile(ctx, scanned.Mods)

	updates := 0
	for _, c := range report.Checks {
		s.logCheck(c)
		if c.HasUpdate() {
			updates++
		}
	}
	s.metrics.AddUpdatesFound(updates)

	report.FinishedAt = time.Now()
	report.summarize()
	return report, nil
}

func (s *Service) logCheck(c Check) {
	switch c.Status {
	case StatusUpdateAvailable:
		s.logger.Info("Update available",
			zap.String("mod", c.Name),
			zap.String("current", c.Current),
			zap.String("latest", c.Target.Version),
			zap.String("game_version", c.Target.GameVersion),
		)
	case StatusNotFound:
		s.logger.Warn("Mod not found in catalog", zap.String("mod", c.Name))
	case StatusFailed:
		s.logger.Error("Update check failed", zap.String("mod", c.Name), zap.Error(c.Err))
	}
}

// DownloadUpdates downloads and verifies the target of every check that has
// one. runID tags history records; an empty runID gets a fresh one.
func (s *Service) DownloadUpdates(ctx context.Context, runID string, checks []Check) []Download {
	if runID == "" {
		runID = uuid.NewString()
	}

	targets := make(map[string]Check)
	var names []string
	for _, c := range checks {
		if c.HasUpdate() {
			targets[c.Name] = c
			names = append(names, c.Name)
		}
	}

	settled := workerpool.Settle(ctx, s.pool, names, func(ctx context.Context, name string) (Download, error) {
		return s.downloadOne(ctx, runID, name, *targets[name].Target), nil
	})

	downloads := make([]Download, len(settled))
	for i, r := range settled {
		if r.Err != nil {
			// Only reachable through a panic or cancellation before start.
			target := targets[r.Key].Target
			downloads[i] = Download{Name: r.Key, Version: target.Version, Status: StatusFailed, Err: r.Err, Error: r.Err.Error()}
			continue
		}
		downloads[i] = r.Value
	}
	return downloads
}

func (s *Service) downloadOne(ctx context.Context, runID, name string, rel models.Release) Download {
	d := Download{Name: name, Version: rel.Version, SHA1: rel.SHA1}
	log := s.logger.With(zap.String("mod", name), zap.String("version", rel.Version))

	path, err := s.downloader.Download(ctx, name, rel)
	if err != nil {
		s.fail(&d, StatusFailed, err)
		s.metrics.IncDownloads(metrics.OutcomeFailed)
		log.Error("Download failed", zap.Error(err))
		s.record(ctx, runID, d, rel)
		return d
	}
	d.Path = path
	s.metrics.IncDownloads(metrics.OutcomeOK)

	switch {
	case rel.SHA1 == "":
		d.Status = StatusUnverified
		s.metrics.IncVerifications(metrics.OutcomeUnverified)
		log.Warn("Catalog has no hash for release, keeping unverified download")
	default:
		if err := hasher.Verify(path, rel.SHA1); err != nil {
			var mismatch *hasher.MismatchError
			if errors.As(err, &mismatch) {
				_ = os.Remove(path)
				d.Path = ""
				s.fail(&d, StatusMismatch, err)
				s.metrics.IncVerifications(metrics.OutcomeMismatch)
				log.Error("Downloaded archive failed verification", zap.Error(err))
			} else {
				s.fail(&d, StatusFailed, err)
				s.metrics.IncVerifications(metrics.OutcomeFailed)
				log.Error("Could not verify downloaded archive", zap.Error(err))
			}
			s.record(ctx, runID, d, rel)
			return d
		}
		d.Status = StatusDownloaded
		s.metrics.IncVerifications(metrics.OutcomeOK)
		log.Info("Downloaded and verified")
	}

	if s.mirror != nil {
		key, err := s.mirror.Upload(ctx, name, path, rel.SHA1)
		if err != nil {
			log.Warn("Mirror upload failed", zap.Error(err))
		} else {
			d.MirrorKey = key
		}
	}

	s.record(ctx, runID, d, rel)
	return d
}

func (s *Service) fail(d *Download, status Status, err error) {
	d.Status = status
	d.Err = err
	d.Error = err.Error()
}

func (s *Service) record(ctx context.Context, runID string, d Download, rel models.Release) {
	if s.history == nil {
		return
	}
	rec := &DownloadRecord{
		RunID:     runID,
		ModName:   d.Name,
		Version:   d.Version,
		FileName:  rel.FileName,
		SHA1:      rel.SHA1,
		Status:    string(d.Status),
		Error:     d.Error,
		MirrorKey: d.MirrorKey,
	}
	if err := s.history.Record(ctx, rec); err != nil {
		s.logger.Warn("Failed to record download history", zap.String("mod", d.Name), zap.Error(err))
	}
}

// Run checks every installed mod and, unless dryRun is set, downloads the
// updates it found.
func (s *Service) Run(ctx context.Context, dryRun bool) (*Report, error) {
	report, err := s.CheckUpdates(ctx)
	if err != nil {
		return nil, err
	}
	report.DryRun = dryRun

	if !dryRun {
		report.Downloads = s.DownloadUpdates(ctx, report.RunID, report.Checks)
	}

	report.FinishedAt = time.Now()
	report.summarize()
	s.logger.Info("Sync finished",
		zap.String("run_id", report.RunID),
		zap.Int("mods", report.Summary.Total),
		zap.Int("updates", report.Summary.Updates),
		zap.Int("downloaded", report.Summary.Downloaded),
		zap.Int("failed", report.Summary.Failed),
	)
	return report, nil
}

// Changelog returns the catalog changelog entries of name that are newer than
// the installed release. Every entry is returned when nothing is installed.
func (s *Service) Changelog(ctx context.Context, name string) (*ChangelogView, error) {
	local, err := s.local.ScanMod(ctx, name)
	if err != nil {
		return nil, err
	}
	remote, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	view := &ChangelogView{Name: name, Entries: []changelog.Entry{}}
	current, ok := local.LatestRelease(s.engine.Ordering())
	var baseline *version.Version
	if ok {
		view.Current = current.Version
		if v, err := version.Parse(current.Version); err == nil {
			baseline = &v
		}
	}

	for _, e := range remote.Changelog {
		if baseline == nil {
			view.Entries = append(view.Entries, e)
			continue
		}
		v, err := version.Parse(e.Version)
		if err == nil && v.Compare(*baseline) > 0 {
			view.Entries = append(view.Entries, e)
		}
	}
	return view, nil
}

// History returns recent download records, or nil when no history is configured.
func (s *Service) History(ctx context.Context, mod string, limit int) ([]DownloadRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, mod, limit)
}

// Mirrored lists the archives of mod held in the mirror. enabled is false
// when no mirror is configured.
func (s *Service) Mirrored(ctx context.Context, mod string) (objects []storage.Object, enabled bool, err error) {
	if s.mirror == nil {
		return nil, false, nil
	}
	objects, err = s.mirror.List(ctx, mod)
	if err != nil {
		return nil, true, err
	}
	if objects == nil {
		objects = []storage.Object{}
	}
	return objects, true, nil
}

func (s *Service) newReport(dryRun bool) *Report {
	return &Report{
		RunID:        uuid.NewString(),
		StartedAt:    time.Now(),
		DryRun:       dryRun,
		ScanFailures: make(map[string]string),
	}
}
