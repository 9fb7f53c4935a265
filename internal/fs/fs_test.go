package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickswitch/internal/errors"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListSortsDirsFirstCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banana.txt"), nil, 0o644))

	entries, err := List(dir, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Docs", "src", "banana.txt", "README"}, names(entries))
	assert.True(t, entries[0].IsDir())
	assert.Equal(t, filepath.Join(dir, "src"), entries[1].Path)
}

func TestListParentEntry(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	entries, err := List(sub, Options{IncludeParent: true})
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	assert.Equal(t, ParentName, entries[0].Name)
	assert.Equal(t, dir, entries[0].Path)
	assert.True(t, entries[0].IsDir())

	// The filesystem root has no parent entry.
	root, err := List("/", Options{IncludeParent: true})
	require.NoError(t, err)
	for _, e := range root {
		assert.NotEqual(t, ParentName, e.Name)
	}
}

func TestListHiddenAndIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cache.pyc"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.go"), nil, 0o644))

	entries, err := List(dir, Options{
		Ignore: []glob.Glob{glob.MustCompile("*.pyc")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.go"}, names(entries))

	entries, err = List(dir, Options{ShowHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", "cache.pyc", "keep.go"}, names(entries))
}

func TestListSymlinkNotFollowed(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link")))

	entries, err := List(dir, Options{})
	require.NoError(t, err)

	var link *Entry
	for i := range entries {
		if entries[i].Name == "link" {
			link = &entries[i]
		}
	}
	require.NotNil(t, link)
	assert.Equal(t, KindSymlink, link.Kind)
	assert.False(t, link.IsDir())
}

func TestListErrorsAreClassified(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"), Options{})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = List(file, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsNotADirectory(err))
}
