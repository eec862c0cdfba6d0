package reconcile

import (
	"fmt"
	"strings"

	"mod-sync/core/errdefs"
	"mod-sync/core/models"
	"mod-sync/core/version"
)

// Engine computes which remote releases are real updates over a local install.
// The same Ordering governs both the local baseline and the per-release test.
type Engine struct {
	mode  Mode
	order models.Ordering
}

// NewEngine returns an engine for the named policy ("version" or "timestamp").
func NewEngine(policy string) (*Engine, error) {
	policy = strings.ToLower(strings.TrimSpace(policy))
	order, err := models.OrderingFor(policy)
	if err != nil {
		return nil, err
	}
	mode := ModeVersion
	if policy == string(ModeTimestamp) {
		mode = ModeTimestamp
	}
	return &Engine{mode: mode, order: order}, nil
}

// Mode returns the comparison dimension in use.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Ordering returns the release ordering the engine applies, so other call
// sites (e.g. picking which update to download) rank releases identically.
func (e *Engine) Ordering() models.Ordering {
	return e.order
}

// Reconcile compares local against remote. Neither argument is modified.
// Mismatched names are a caller bug and fail with errdefs.ErrValidation;
// an empty remote release set simply yields no update.
func (e *Engine) Reconcile(local, remote *models.Mod) (*Result, error) {
	if local == nil || remote == nil {
		return nil, fmt.Errorf("%w: reconcile requires both local and remote records", errdefs.ErrValidation)
	}
	if local.Name != remote.Name {
		return nil, fmt.Errorf("%w: cannot reconcile local %q against remote %q", errdefs.ErrValidation, local.Name, remote.Name)
	}

	if e.mode == ModeTimestamp {
		return e.reconcileByTime(local, remote), nil
	}
	return e.reconcileByVersion(local, remote), nil
}

func (e *Engine) reconcileByVersion(local, remote *models.Mod) *Result {
	result := &Result{Name: remote.Name}

	var baseline *version.Version
	if current, ok := local.LatestRelease(e.order); ok {
		result.Current = &current
		if v, err := version.Parse(current.Version); err == nil {
			baseline = &v
		} else {
			// An unparseable local version is no baseline at all.
			result.Current = nil
		}
	}

	var qualifying []models.Release
	for _, r := range remote.Releases {
		v, err := version.Parse(r.Version)
		if err != nil {
			result.Incomparable = append(result.Incomparable, r.Version)
			continue
		}
		if baseline == nil || v.Compare(*baseline) > 0 {
			qualifying = append(qualifying, r)
		}
	}

	if len(qualifying) > 0 {
		result.Update = remote.WithReleases(qualifying)
	}
	return result
}

func (e *Engine) reconcileByTime(local, remote *models.Mod) *Result {
	result := &Result{Name: remote.Name}

	// Back-fill on a copy; the caller's local record keeps its own times.
	filled := local.Clone()
	for i := range filled.Releases {
		rel := &filled.Releases[i]
		if match, ok := remote.FindReleaseBySHA1(rel.SHA1); ok && match.HasTimestamp() {
			t := *match.ReleasedAt
			rel.ReleasedAt = &t
		} else {
			t := Epoch
			rel.ReleasedAt = &t
		}
	}

	current, hasCurrent := filled.LatestRelease(e.order)
	if hasCurrent {
		result.Current = &current
	}

	var qualifying []models.Release
	for _, r := range remote.Releases {
		if !r.HasTimestamp() {
			result.Incomparable = append(result.Incomparable, r.Version)
			continue
		}
		if !hasCurrent || r.ReleasedAt.After(*current.ReleasedAt) {
			qualifying = append(qualifying, r)
		}
	}

	if len(qualifying) > 0 {
		result.Update = remote.WithReleases(qualifying)
	}
	return result
}
