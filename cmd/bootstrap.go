package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"mod-sync/core/catalog"
	"mod-sync/core/config"
	"mod-sync/core/database"
	"mod-sync/core/downloader"
	"mod-sync/core/logger"
	"mod-sync/core/metrics"
	"mod-sync/core/reconcile"
	"mod-sync/core/scanner"
	"mod-sync/core/storage"
	"mod-sync/core/workerpool"
	"mod-sync/feature/integrity"
	"mod-sync/feature/updates"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

var configDir string

// services holds everything a command needs, assembled from configuration.
type services struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics metrics.Recorder
	scanner *scanner.Scanner

	updates   *updates.Service
	integrity *integrity.Service
}

// bootstrap loads configuration and wires the pipeline. Storage and the
// history database are optional: a failure to reach them is logged and the
// run continues without them.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	engine, err := reconcile.NewEngine(cfg.Sync.Policy)
	if err != nil {
		return nil, err
	}

	ignore, err := scanner.LoadIgnoreList(cfg.Mods.IgnoreFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore list: %w", err)
	}

	pool := workerpool.New(cfg.Sync.PoolSize())
	rec := metrics.New(cfg.Metrics)
	scan := scanner.New(cfg.Mods.Dir, ignore, pool, logg)
	cat := catalog.NewClient(cfg.Catalog, logg, rec)
	dl := downloader.New(cfg.Download, cfg.Catalog, cfg.Mods.Target(), logg)

	updateOpts := []updates.Option{updates.WithMetrics(rec)}
	var integrityOpts []integrity.Option

	if mirror := connectMirror(ctx, cfg.Storage, logg); mirror != nil {
		updateOpts = append(updateOpts, updates.WithMirror(mirror))
		integrityOpts = append(integrityOpts, integrity.WithMirror(mirror))
	}
	if history := connectHistory(cfg.Database, logg); history != nil {
		updateOpts = append(updateOpts, updates.WithHistory(history))
		integrityOpts = append(integrityOpts, integrity.WithSchema(history))
	}

	logg.Debug("Pipeline ready",
		zap.String("mods_dir", cfg.Mods.Dir),
		zap.String("policy", string(engine.Mode())),
		zap.Int("workers", pool.Size()),
	)

	return &services{
		cfg:       cfg,
		logger:    logg,
		metrics:   rec,
		scanner:   scan,
		updates:   updates.NewService(scan, cat, engine, dl, pool, logg, updateOpts...),
		integrity: integrity.NewService(scan, cat, pool, cfg.Mods.Dir, logg, integrityOpts...),
	}, nil
}

func connectMirror(ctx context.Context, cfg storage.Config, logg *zap.Logger) *storage.Mirror {
	if !cfg.Enabled {
		return nil
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		logg.Warn("Optional storage mirror unavailable", zap.Error(err))
		return nil
	}

	mirror := storage.NewMirror(client, cfg, logg)
	if err := mirror.EnsureBucket(ctx); err != nil {
		logg.Warn("Optional storage mirror unavailable", zap.Error(err))
		return nil
	}
	logg.Info("Mirroring archives", zap.String("bucket", cfg.Bucket))
	return mirror
}

func connectHistory(cfg database.Config, logg *zap.Logger) *updates.GormHistory {
	if !cfg.Enabled {
		return nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}

	history := updates.NewGormHistory(db)
	if err := history.Migrate(); err != nil {
		logg.Warn("Download history disabled", zap.Error(err))
		return nil
	}
	logg.Info("Recording download history", zap.String("driver", cfg.Driver))
	return history
}

// saveReport writes v as indented JSON to {prefix}_{unix}.json and returns the file name.
func saveReport(prefix string, v any) (string, error) {
	filename := fmt.Sprintf("%s_%d.json", prefix, time.Now().Unix())
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save JSON file: %w", err)
	}
	return filename, nil
}
