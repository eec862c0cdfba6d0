package reconcile

import (
	"time"

	"mod-sync/core/models"
)

// Mode selects the dimension reconciliation compares on.
type Mode string

const (
	// ModeVersion qualifies remote releases whose version exceeds the local latest.
	ModeVersion Mode = models.PolicyVersion
	// ModeTimestamp qualifies remote releases released after the local latest,
	// after back-filling local release times by content hash.
	ModeTimestamp Mode = models.PolicyTimestamp
)

// Epoch is assigned to local releases whose hash has no remote match in
// timestamp mode, so they always rank older than any catalog release.
var Epoch = time.Unix(0, 0).UTC()

// Result is the reconciliation output for a single mod.
type Result struct {
	// Name is the mod name shared by both sides.
	Name string `json:"name"`

	// Current is the local release used as the baseline. Nil when the mod has
	// no local releases or no comparable one.
	Current *models.Release `json:"current,omitempty"`

	// Update is a copy of the remote record whose releases are exactly the
	// qualifying subset. Nil when there is nothing newer.
	Update *models.Mod `json:"update,omitempty"`

	// Incomparable lists remote versions that could not be ordered and were
	// therefore never treated as updates.
	Incomparable []string `json:"incomparable,omitempty"`
}

// HasUpdate reports whether at least one remote release qualified.
func (r *Result) HasUpdate() bool {
	return r.Update != nil && len(r.Update.Releases) > 0
}

// Versions returns the qualifying release versions in remote order.
func (r *Result) Versions() []string {
	if r.Update == nil {
		return nil
	}
	out := make([]string, len(r.Update.Releases))
	for i, rel := range r.Update.Releases {
		out[i] = rel.Version
	}
	return out
}
