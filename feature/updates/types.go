package updates

import (
	"time"

	"mod-sync/core/changelog"
	"mod-sync/core/models"
	"mod-sync/core/storage"
)

// Status is the per-mod outcome of a pipeline stage.
type Status string

const (
	StatusUpToDate        Status = "up_to_date"
	StatusUpdateAvailable Status = "update_available"
	StatusNotFound        Status = "not_found"
	StatusFailed          Status = "failed"
	StatusDownloaded      Status = "downloaded"
	StatusUnverified      Status = "unverified"
	StatusMismatch        Status = "mismatch"
)

// Check is the reconciliation outcome for one installed mod.
type Check struct {
	Name string `json:"name"`
	// Current is the installed baseline version, empty when there is none.
	Current string `json:"current,omitempty"`
	// Versions lists every qualifying remote version.
	Versions []string `json:"versions,omitempty"`
	// Target is the release that would be downloaded.
	Target *models.Release `json:"target,omitempty"`
	// Incomparable lists remote versions that could not be ordered.
	Incomparable []string `json:"incomparable,omitempty"`
	Status       Status   `json:"status"`
	Error        string   `json:"error,omitempty"`
	Err          error    `json:"-"`
}

// HasUpdate reports whether Target should be downloaded.
func (c Check) HasUpdate() bool {
	return c.Status == StatusUpdateAvailable && c.Target != nil
}

// Download is the outcome of fetching and verifying one target release.
type Download struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Path      string `json:"path,omitempty"`
	SHA1      string `json:"sha1,omitempty"`
	MirrorKey string `json:"mirror_key,omitempty"`
	Status    Status `json:"status"`
	Error     string `json:"error,omitempty"`
	Err       error  `json:"-"`
}

// Summary counts outcomes across a run.
type Summary struct {
	Total      int `json:"total"`
	UpToDate   int `json:"up_to_date"`
	Updates    int `json:"updates"`
	NotFound   int `json:"not_found"`
	Failed     int `json:"failed"`
	Downloaded int `json:"downloaded"`
	Unverified int `json:"unverified"`
	Mismatched int `json:"mismatched"`
}

// Report is the complete result of a check or sync run. It is returned even
// when every mod failed.
type Report struct {
	RunID        string            `json:"run_id"`
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
	DryRun       bool              `json:"dry_run"`
	Checks       []Check           `json:"checks"`
	Downloads    []Download        `json:"downloads,omitempty"`
	ScanFailures map[string]string `json:"scan_failures,omitempty"`
	Summary      Summary           `json:"summary"`
}

// Updates returns the checks that have a downloadable target.
func (r *Report) Updates() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.HasUpdate() {
			out = append(out, c)
		}
	}
	return out
}

func (r *Report) summarize() {
	s := Summary{Total: len(r.Checks) + len(r.ScanFailures), Failed: len(r.ScanFailures)}
	for _, c := range r.Checks {
		switch c.Status {
		case StatusUpToDate:
			s.UpToDate++
		case StatusUpdateAvailable:
			s.Updates++
		case StatusNotFound:
			s.NotFound++
		case StatusFailed:
			s.Failed++
		}
	}
	for _, d := range r.Downloads {
		switch d.Status {
		case StatusDownloaded:
			s.Downloaded++
		case StatusUnverified:
			s.Unverified++
		case StatusMismatch:
			s.Mismatched++
		case StatusFailed:
			s.Failed++
		}
	}
	r.Summary = s
}

// ChangelogView lists the changelog entries newer than the installed release.
type ChangelogView struct {
	Name    string            `json:"name"`
	Current string            `json:"current,omitempty"`
	Entries []changelog.Entry `json:"entries"`
}

// MirrorListing is the mirror content for one mod. Enabled is false when no
// mirror is configured, which is distinct from an empty mirror.
type MirrorListing struct {
	Enabled bool             `json:"enabled"`
	Objects []storage.Object `json:"objects"`
}
