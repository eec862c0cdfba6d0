package models

import (
	"fmt"
	"strings"
	"time"

	"mod-sync/core/errdefs"
	"mod-sync/core/version"
)

// Ordering ranks two releases. It returns a positive number when a is newer
// than b, negative when older and zero when they rank equal.
type Ordering func(a, b Release) int

const (
	// PolicyVersion ranks by version, then release time.
	PolicyVersion = "version"
	// PolicyTimestamp ranks by release time only.
	PolicyTimestamp = "timestamp"
)

// VersionPriority ranks releases by version (unparseable versions oldest),
// breaking exact version ties by release time. A missing release time ranks
// below any real one.
func VersionPriority(a, b Release) int {
	if c := version.CompareInvalidOldest(a.Version, b.Version); c != 0 {
		return c
	}
	return compareTimes(a.ReleasedAt, b.ReleasedAt)
}

// TimestampPriority ranks releases by release time only; the version is not
// consulted. Only meaningful once every release carries a release time.
func TimestampPriority(a, b Release) int {
	return compareTimes(a.ReleasedAt, b.ReleasedAt)
}

// OrderingFor resolves a configured policy name.
func OrderingFor(policy string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", PolicyVersion:
		return VersionPriority, nil
	case PolicyTimestamp:
		return TimestampPriority, nil
	default:
		return nil, fmt.Errorf("%w: unknown ordering policy %q", errdefs.ErrValidation, policy)
	}
}

func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
