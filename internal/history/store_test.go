package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), limit)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordDeduplicatesAndMovesToFront(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 10)

	a := t.TempDir()
	b := t.TempDir()

	require.NoError(t, store.Record(ctx, a))
	require.NoError(t, store.Record(ctx, b))
	require.NoError(t, store.Record(ctx, a))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, a, entries[0].Path)
	assert.Equal(t, 2, entries[0].Visits)
	assert.Equal(t, b, entries[1].Path)
	assert.Equal(t, 1, entries[1].Visits)
}

func TestRecordTrimsToCap(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3)

	base := t.TempDir()
	var dirs []string
	for i := 0; i < 5; i++ {
		d := filepath.Join(base, fmt.Sprintf("d%d", i))
		require.NoError(t, os.Mkdir(d, 0o755))
		dirs = append(dirs, d)
		require.NoError(t, store.Record(ctx, d))
	}

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, dirs[4], entries[0].Path)
	assert.Equal(t, dirs[2], entries[2].Path)
}

func TestListFiltersStalePaths(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 10)

	keep := t.TempDir()
	gone := filepath.Join(t.TempDir(), "gone")
	require.NoError(t, os.Mkdir(gone, 0o755))

	require.NoError(t, store.Record(ctx, keep))
	require.NoError(t, store.Record(ctx, gone))
	require.NoError(t, os.Remove(gone))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep, entries[0].Path)
}

func TestOpenRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0o644))

	store, err := Open(ctx, path, 10)
	require.NoError(t, err)
	defer store.Close()

	dir := t.TempDir()
	require.NoError(t, store.Record(ctx, dir))
	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, dir, entries[0].Path)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 10)

	dir := t.TempDir()
	require.NoError(t, store.Record(ctx, dir))
	require.NoError(t, store.Remove(ctx, dir))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
