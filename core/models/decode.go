package models

import (
	"bytes"
	"fmt"
	"time"

	"mod-sync/core/changelog"
	"mod-sync/core/errdefs"

	json "github.com/goccy/go-json"
)

// Optional records whether a JSON field was absent, explicitly null, or set.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// UnmarshalJSON is only invoked for keys present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Get returns the value and whether it was present and non-null.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present && !o.Null
}

// OrZero returns the value, or T's zero value when absent or null.
func (o Optional[T]) OrZero() T {
	v, _ := o.Get()
	return v
}

type modJSON struct {
	Name              Optional[string]        `json:"name"`
	Title             Optional[string]        `json:"title"`
	Summary           Optional[string]        `json:"summary"`
	Description       Optional[string]        `json:"description"`
	Category          Optional[string]        `json:"category"`
	Owner             Optional[string]        `json:"owner"`
	Homepage          Optional[string]        `json:"homepage"`
	Thumbnail         Optional[string]        `json:"thumbnail"`
	Tags              Optional[[]string]      `json:"tags"`
	Images            Optional[[]Image]       `json:"images"`
	License           Optional[License]       `json:"license"`
	Changelog         Optional[string]        `json:"changelog"`
	DownloadsCount    Optional[int]           `json:"downloads_count"`
	Score             Optional[float64]       `json:"score"`
	CreatedAt         Optional[string]        `json:"created_at"`
	UpdatedAt         Optional[string]        `json:"updated_at"`
	LastHighlightedAt Optional[string]        `json:"last_highlighted_at"`
	Releases          Optional[[]releaseJSON] `json:"releases"`
}

type releaseJSON struct {
	Version     Optional[string]   `json:"version"`
	FileName    Optional[string]   `json:"file_name"`
	DownloadURL Optional[string]   `json:"download_url"`
	SHA1        Optional[string]   `json:"sha1"`
	ReleasedAt  Optional[string]   `json:"released_at"`
	InfoJSON    Optional[infoJSON] `json:"info_json"`
}

type infoJSON struct {
	Dependencies    Optional[[]string] `json:"dependencies"`
	FactorioVersion Optional[string]   `json:"factorio_version"`
}

// DecodeMod builds a Mod from a catalog JSON document.
// Only "name" and each release's "version" are required; every other field
// falls back to absent when missing or null.
func DecodeMod(data []byte) (*Mod, error) {
	var raw modJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding mod document: %v", errdefs.ErrValidation, err)
	}

	name, ok := raw.Name.Get()
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: mod document is missing required field \"name\"", errdefs.ErrValidation)
	}

	mod := NewMod(name)
	mod.Title = raw.Title.OrZero()
	mod.Summary = raw.Summary.OrZero()
	mod.Description = raw.Description.OrZero()
	mod.Category = raw.Category.OrZero()
	mod.Owner = raw.Owner.OrZero()
	mod.Homepage = raw.Homepage.OrZero()
	mod.Thumbnail = raw.Thumbnail.OrZero()
	mod.Tags = raw.Tags.OrZero()
	mod.Images = raw.Images.OrZero()

	if lic, ok := raw.License.Get(); ok {
		mod.License = &lic
	}
	if text, ok := raw.Changelog.Get(); ok {
		mod.Changelog = changelog.Parse(text)
	}
	if n, ok := raw.DownloadsCount.Get(); ok {
		mod.DownloadsCount = &n
	}
	if s, ok := raw.Score.Get(); ok {
		mod.Score = &s
	}

	var err error
	if mod.CreatedAt, err = parseTime(raw.CreatedAt, "created_at"); err != nil {
		return nil, err
	}
	if mod.UpdatedAt, err = parseTime(raw.UpdatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if mod.LastHighlightedAt, err = parseTime(raw.LastHighlightedAt, "last_highlighted_at"); err != nil {
		return nil, err
	}

	for i, rr := range raw.Releases.OrZero() {
		release, err := decodeRelease(rr)
		if err != nil {
			return nil, fmt.Errorf("mod %s release #%d: %w", name, i, err)
		}
		mod.AddRelease(release)
	}

	return mod, nil
}

func decodeRelease(rr releaseJSON) (Release, error) {
	v, ok := rr.Version.Get()
	if !ok || v == "" {
		return Release{}, fmt.Errorf("%w: missing required field \"version\"", errdefs.ErrValidation)
	}

	releasedAt, err := parseTime(rr.ReleasedAt, "released_at")
	if err != nil {
		return Release{}, err
	}

	release := Release{
		Version:     v,
		FileName:    rr.FileName.OrZero(),
		DownloadURL: rr.DownloadURL.OrZero(),
		SHA1:        rr.SHA1.OrZero(),
		ReleasedAt:  releasedAt,
	}
	if info, ok := rr.InfoJSON.Get(); ok {
		release.Dependencies = info.Dependencies.OrZero()
		release.GameVersion = info.FactorioVersion.OrZero()
	}
	return release, nil
}

func parseTime(field Optional[string], name string) (*time.Time, error) {
	s, ok := field.Get()
	if !ok || s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", errdefs.ErrValidation, name, err)
	}
	return &t, nil
}
