package models

import (
	"time"

	"mod-sync/core/changelog"
)

// Release is one downloadable archive of a mod at a specific version.
type Release struct {
	// Version is the release version string (e.g. "1.2.0").
	Version string `json:"version"`
	// FileName is the archive file name (e.g. "foo_1.2.0.zip").
	FileName string `json:"file_name"`
	// DownloadURL is the catalog-relative download path; empty when unknown.
	DownloadURL string `json:"download_url,omitempty"`
	// SHA1 is the hex content hash. Empty until computed or supplied by the catalog.
	SHA1 string `json:"sha1"`
	// ReleasedAt is nil for releases discovered on disk.
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	// Dependencies are raw dependency specs from info.json, in catalog order.
	Dependencies []string `json:"dependencies,omitempty"`
	// GameVersion is the targeted game version (e.g. "2.0").
	GameVersion string `json:"game_version,omitempty"`
}

// HasTimestamp reports whether the release carries a release time.
func (r Release) HasTimestamp() bool {
	return r.ReleasedAt != nil
}

// Image is a gallery image attached to a catalog entry.
type Image struct {
	ID        string `json:"id"`
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
}

// License describes the license a mod is published under.
type License struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Mod aggregates a mod's metadata and its known releases.
// Local and remote records of the same mod are correlated by Name only.
type Mod struct {
	Name string `json:"name"`

	Title       string            `json:"title,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Owner       string            `json:"owner,omitempty"`
	Homepage    string            `json:"homepage,omitempty"`
	Thumbnail   string            `json:"thumbnail,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Images      []Image           `json:"images,omitempty"`
	License     *License          `json:"license,omitempty"`
	Changelog   []changelog.Entry `json:"changelog,omitempty"`

	DownloadsCount    *int       `json:"downloads_count,omitempty"`
	Score             *float64   `json:"score,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
	LastHighlightedAt *time.Time `json:"last_highlighted_at,omitempty"`

	// Releases is not deduplicated by version; callers handle duplicates.
	Releases []Release `json:"releases"`
}

// NewMod creates an empty record for name.
func NewMod(name string) *Mod {
	return &Mod{Name: name, Releases: []Release{}}
}

// AddRelease appends r to the release collection.
func (m *Mod) AddRelease(r Release) {
	m.Releases = append(m.Releases, r)
}

// LatestRelease returns the release ranked highest by order.
// Ties keep the release that appears first in stored order.
// ok is false when the mod has no releases.
func (m *Mod) LatestRelease(order Ordering) (latest Release, ok bool) {
	for i, r := range m.Releases {
		if i == 0 || order(r, latest) > 0 {
			latest = r
			ok = true
		}
	}
	return latest, ok
}

// FindReleaseBySHA1 returns the first release in stored order whose hash equals sha1.
func (m *Mod) FindReleaseBySHA1(sha1 string) (Release, bool) {
	if sha1 == "" {
		return Release{}, false
	}
	for _, r := range m.Releases {
		if r.SHA1 == sha1 {
			return r, true
		}
	}
	return Release{}, false
}

// FindRelease returns the first release whose version string equals v.
func (m *Mod) FindRelease(v string) (Release, bool) {
	for _, r := range m.Releases {
		if r.Version == v {
			return r, true
		}
	}
	return Release{}, false
}

// WithReleases returns a shallow copy of m carrying releases instead of m's own.
func (m *Mod) WithReleases(releases []Release) *Mod {
	cp := *m
	cp.Releases = releases
	return &cp
}

// Clone returns a copy of m whose release collection can be modified
// without affecting m.
func (m *Mod) Clone() *Mod {
	releases := make([]Release, len(m.Releases))
	for i, r := range m.Releases {
		if r.ReleasedAt != nil {
			t := *r.ReleasedAt
			r.ReleasedAt = &t
		}
		if r.Dependencies != nil {
			r.Dependencies = append([]string(nil), r.Dependencies...)
		}
		releases[i] = r
	}
	return m.WithReleases(releases)
}
