package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIgnoreList_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "ignore.txt")

	names, err := LoadIgnoreList(path)
	require.NoError(t, err)
	assert.Empty(t, names)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defaultIgnoreContents, string(data))

	names, err = LoadIgnoreList(path)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadIgnoreList_ParsesNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore.txt")
	require.NoError(t, os.WriteFile(path, []byte("# header\n\nfoo\n  bar  \n#baz\n"), 0644))

	names, err := LoadIgnoreList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, names)
}

func TestLoadIgnoreList_EmptyPath(t *testing.T) {
	names, err := LoadIgnoreList("")
	assert.NoError(t, err)
	assert.Nil(t, names)
}

func TestIgnored_IncludesBuiltins(t *testing.T) {
	s := New(t.TempDir(), []string{"custom"}, nil, nil)
	for _, n := range BuiltinMods {
		assert.True(t, s.Ignored(n), n)
	}
	assert.True(t, s.Ignored("custom"))
	assert.False(t, s.Ignored("foo"))
}
