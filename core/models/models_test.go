package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestLatestRelease_Empty(t *testing.T) {
	mod := NewMod("empty")

	_, ok := mod.LatestRelease(VersionPriority)
	assert.False(t, ok)
}

func TestLatestRelease_IgnoresInsertionOrder(t *testing.T) {
	mod := NewMod("bar")
	mod.AddRelease(Release{Version: "2.0.0"})
	mod.AddRelease(Release{Version: "1.9.9"})

	latest, ok := mod.LatestRelease(VersionPriority)
	require.True(t, ok)
	assert.Equal(t, "2.0.0", latest.Version)

	reversed := NewMod("bar")
	reversed.AddRelease(Release{Version: "1.9.9"})
	reversed.AddRelease(Release{Version: "2.0.0"})

	latest, ok = reversed.LatestRelease(VersionPriority)
	require.True(t, ok)
	assert.Equal(t, "2.0.0", latest.Version)
}

func TestLatestRelease_NumericNotLexicographic(t *testing.T) {
	mod := NewMod("m")
	for _, v := range []string{"1.9.0", "1.10.0", "1.2.0"} {
		mod.AddRelease(Release{Version: v})
	}

	latest, _ := mod.LatestRelease(VersionPriority)
	assert.Equal(t, "1.10.0", latest.Version)
}

func TestLatestRelease_IsMaximum(t *testing.T) {
	mod := NewMod("m")
	for _, v := range []string{"0.1.0", "3.2.1", "3.2.0", "0.18.17", "3.10.0", "2.99.99"} {
		mod.AddRelease(Release{Version: v})
	}

	latest, ok := mod.LatestRelease(VersionPriority)
	require.True(t, ok)
	for _, r := range mod.Releases {
		assert.GreaterOrEqual(t, VersionPriority(latest, r), 0, "latest %s vs %s", latest.Version, r.Version)
	}
}

func TestLatestRelease_TimestampBreaksVersionTie(t *testing.T) {
	mod := NewMod("m")
	mod.AddRelease(Release{Version: "1.0.0", SHA1: "old", ReleasedAt: at("2023-01-01T00:00:00Z")})
	mod.AddRelease(Release{Version: "1.0.0", SHA1: "new", ReleasedAt: at("2024-01-01T00:00:00Z")})
	mod.AddRelease(Release{Version: "1.0.0", SHA1: "none"})

	latest, _ := mod.LatestRelease(VersionPriority)
	assert.Equal(t, "new", latest.SHA1)
}

func TestLatestRelease_FullTieKeepsFirst(t *testing.T) {
	mod := NewMod("m")
	mod.AddRelease(Release{Version: "1.0.0", SHA1: "first"})
	mod.AddRelease(Release{Version: "1.0.0", SHA1: "second"})

	latest, _ := mod.LatestRelease(VersionPriority)
	assert.Equal(t, "first", latest.SHA1)
}

func TestLatestRelease_InvalidVersionsAreOldest(t *testing.T) {
	mod := NewMod("m")
	mod.AddRelease(Release{Version: "not-a-version"})
	mod.AddRelease(Release{Version: "0.0.1"})

	latest, _ := mod.LatestRelease(VersionPriority)
	assert.Equal(t, "0.0.1", latest.Version)
}

func TestLatestRelease_TimestampPolicy(t *testing.T) {
	mod := NewMod("m")
	mod.AddRelease(Release{Version: "9.0.0"})
	mod.AddRelease(Release{Version: "1.0.0", ReleasedAt: at("2020-01-01T00:00:00Z")})

	latest, _ := mod.LatestRelease(TimestampPriority)
	assert.Equal(t, "1.0.0", latest.Version, "missing timestamp ranks lowest under timestamp policy")

	latest, _ = mod.LatestRelease(VersionPriority)
	assert.Equal(t, "9.0.0", latest.Version)
}

func TestFindReleaseBySHA1(t *testing.T) {
	mod := NewMod("m")
	mod.AddRelease(Release{Version: "1.0.0", SHA1: "aaa"})
	mod.AddRelease(Release{Version: "1.0.1", SHA1: "bbb"})
	mod.AddRelease(Release{Version: "1.0.2", SHA1: "bbb"})

	r, ok := mod.FindReleaseBySHA1("bbb")
	require.True(t, ok)
	assert.Equal(t, "1.0.1", r.Version)

	_, ok = mod.FindReleaseBySHA1("ccc")
	assert.False(t, ok)

	_, ok = mod.FindReleaseBySHA1("")
	assert.False(t, ok)
}

func TestFindRelease(t *testing.T) {
	mod := NewMod("m")
	mod.AddRelease(Release{Version: "1.0.0", SHA1: "aaa"})

	r, ok := mod.FindRelease("1.0.0")
	require.True(t, ok)
	assert.Equal(t, "aaa", r.SHA1)

	_, ok = mod.FindRelease("2.0.0")
	assert.False(t, ok)
}

func TestClone_Independent(t *testing.T) {
	mod := NewMod("m")
	mod.AddRelease(Release{Version: "1.0.0", ReleasedAt: at("2020-01-01T00:00:00Z"), Dependencies: []string{"base"}})

	cp := mod.Clone()
	*cp.Releases[0].ReleasedAt = time.Time{}
	cp.Releases[0].Dependencies[0] = "changed"
	cp.Releases[0].Version = "9.9.9"

	assert.Equal(t, "1.0.0", mod.Releases[0].Version)
	assert.Equal(t, "base", mod.Releases[0].Dependencies[0])
	assert.Equal(t, 2020, mod.Releases[0].ReleasedAt.Year())
}

func TestOrderingFor(t *testing.T) {
	tests := []struct {
		policy  string
		wantErr bool
	}{
		{"", false},
		{"version", false},
		{"Timestamp", false},
		{"random", true},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			ord, err := OrderingFor(tt.policy)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, ord)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, ord)
		})
	}
}

func TestRelease_HasTimestamp(t *testing.T) {
	assert.False(t, Release{Version: "1.0.0"}.HasTimestamp())
	assert.True(t, Release{Version: "1.0.0", ReleasedAt: at("2024-01-01T00:00:00Z")}.HasTimestamp())
}
