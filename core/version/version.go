package version

import (
	"fmt"
	"regexp"
	"strings"

	"mod-sync/core/errdefs"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion indicates a version string that cannot be ordered.
var ErrInvalidVersion = fmt.Errorf("%w: invalid version", errdefs.ErrValidation)

// versionRegex accepts catalog versions such as "1.1.7", "0.18.01" and "2.0"
// with optional prerelease/build suffixes.
var versionRegex = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(-[0-9A-Za-z.\-]+)?(\+[0-9A-Za-z.\-]+)?$`)

// Version is a parsed, comparable version string.
type Version struct {
	raw       string
	canonical string
}

// Parse validates s and returns its comparable form.
// Numeric components are compared as numbers: "1.10.0" > "1.9.0" and "0.18.01" == "0.18.1".
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	m := versionRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	canonical := "v" + trimZeros(m[1]) + "." + trimZeros(m[2]) + "." + trimZeros(m[3]) + m[4] + m[5]
	if !semver.IsValid(canonical) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	return Version{raw: trimmed, canonical: canonical}, nil
}

// String returns the version as it was written.
func (v Version) String() string {
	return v.raw
}

// Canonical returns the normalized semver form (e.g. "v0.18.1").
func (v Version) Canonical() string {
	return v.canonical
}

// Compare returns -1, 0 or +1 following semantic-version precedence.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.canonical, other.canonical)
}

// Compare parses both strings and compares them.
// It fails with ErrInvalidVersion if either side is unparseable; it never
// guesses an order for malformed input.
func Compare(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// IsValid reports whether s parses.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// CompareInvalidOldest is the explicit total order used when malformed
// versions must still be sorted: every unparseable version is older than every
// parseable one, and two unparseable versions compare by raw string.
func CompareInvalidOldest(a, b string) int {
	va, errA := Parse(a)
	vb, errB := Parse(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	default:
		return va.Compare(vb)
	}
}

func trimZeros(s string) string {
	if s == "" {
		return "0"
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}
