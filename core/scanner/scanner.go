package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"mod-sync/core/errdefs"
	"mod-sync/core/hasher"
	"mod-sync/core/models"
	"mod-sync/core/workerpool"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ModListFile is the game's list of installed mods.
const ModListFile = "mod-list.json"

var anyArchive = regexp.MustCompile(`^(.+)_(\d+\.\d+\.\d+)\.zip$`)

type modList struct {
	Mods []struct {
		Name    string `json:"name"`
		Enabled bool   `json:"enabled"`
	} `json:"mods"`
}

// Result is the outcome of a directory scan. Mods holds every mod that was
// scanned successfully; Failures holds the rest keyed by mod name.
type Result struct {
	Mods     []*models.Mod
	Failures map[string]error
}

// Scanner builds local mod records from a mods directory.
type Scanner struct {
	dir    string
	ignore map[string]struct{}
	pool   *workerpool.Pool
	logger *zap.Logger
}

// New returns a scanner for dir. ignore is added to the built-in mods.
func New(dir string, ignore []string, pool *workerpool.Pool, logger *zap.Logger) *Scanner {
	if pool == nil {
		pool = workerpool.New(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{dir: dir, ignore: ignoreSet(ignore), pool: pool, logger: logger}
}

// ArchiveName returns the file name the game expects for a release.
func ArchiveName(name, version string) string {
	return fmt.Sprintf("%s_%s.zip", name, version)
}

// Ignored reports whether name is skipped by this scanner.
func (s *Scanner) Ignored(name string) bool {
	_, ok := s.ignore[name]
	return ok
}

// ModNames lists the installed mods that should be synced, sorted by name.
// mod-list.json is authoritative when present; otherwise names are taken
// from archive file names in the directory.
func (s *Scanner) ModNames() ([]string, error) {
	names, err := s.namesFromModList()
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("No mod list found, falling back to archive names", zap.String("dir", s.dir))
		names, err = s.namesFromArchives()
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || s.Ignored(n) {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

// Scan hashes the archives of every installed mod on the worker pool.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	names, err := s.ModNames()
	if err != nil {
		return nil, err
	}
	return s.ScanNames(ctx, names), nil
}

// ScanNames hashes the archives of the given mods. A failure for one mod is
// recorded in Result.Failures and never stops the others.
func (s *Scanner) ScanNames(ctx context.Context, names []string) *Result {
	settled := workerpool.Settle(ctx, s.pool, names, s.ScanMod)

	result := &Result{Failures: make(map[string]error)}
	for _, r := range settled {
		if r.Err != nil {
			s.logger.Warn("Failed to scan mod", zap.String("mod", r.Key), zap.Error(r.Err))
			result.Failures[r.Key] = r.Err
			continue
		}
		result.Mods = append(result.Mods, r.Value)
	}
	return result
}

// ScanMod builds the local record of a single mod from its archives.
// A mod with no archive on disk yields a record with no releases.
func (s *Scanner) ScanMod(ctx context.Context, name string) (*models.Mod, error) {
	files, err := s.archivesOf(name)
	if err != nil {
		return nil, err
	}

	mod := models.NewMod(name)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sum, err := hasher.ComputeSHA1(filepath.Join(s.dir, f.file))
		if err != nil {
			return nil, err
		}
		mod.AddRelease(models.Release{Version: f.version, FileName: f.file, SHA1: sum})
	}
	if len(files) == 0 {
		s.logger.Debug("No archive found for mod", zap.String("mod", name))
	}
	return mod, nil
}

type archive struct {
	file    string
	version string
}

func (s *Scanner) archivesOf(name string) ([]archive, error) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `_(\d+\.\d+\.\d+)\.zip$`)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading mods directory: %v", errdefs.ErrTransient, err)
	}

	var out []archive
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if m := pattern.FindStringSubmatch(e.Name()); m != nil {
			out = append(out, archive{file: e.Name(), version: m[1]})
		}
	}
	return out, nil
}

func (s *Scanner) namesFromModList() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, ModListFile))
	if err != nil {
		return nil, err
	}

	var list modList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", errdefs.ErrValidation, ModListFile, err)
	}

	names := make([]string, 0, len(list.Mods))
	for _, m := range list.Mods {
		names = append(names, m.Name)
	}
	return names, nil
}

func (s *Scanner) namesFromArchives() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mods directory %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if m := anyArchive.FindStringSubmatch(e.Name()); m != nil {
			names = append(names, m[1])
		}
	}
	return names, nil
}
