package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickswitch/internal/fs"
	"quickswitch/internal/history"
)

// fixture creates a directory containing banana/, apple.txt and
// avocado.md.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "banana"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "apple.txt"), []byte("apple\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "avocado.md"), []byte("avocado\n"), 0o644))
	return dir
}

func newModel(t *testing.T, dir string, store *history.Store) *Model {
	t.Helper()
	m, err := New(Options{StartDir: dir, Store: store})
	require.NoError(t, err)
	return m
}

func newStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, _ = m.Update(msg)
	}
}

func displayedNames(m *Model) []string {
	var out []string
	for _, idx := range m.matched {
		out = append(out, m.entries[idx].Name)
	}
	return out
}

func TestInitialListingOrder(t *testing.T) {
	m := newModel(t, fixture(t), nil)

	assert.Equal(t, Browsing, m.mode)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, []string{"..", "banana", "apple.txt", "avocado.md"}, displayedNames(m))
}

func TestSearchNarrowsAndClampsCursor(t *testing.T) {
	m := newModel(t, fixture(t), nil)

	press(t, m, "down", "down", "down") // cursor on avocado.md
	assert.Equal(t, 3, m.cursor)

	press(t, m, "/", "a", "p")
	assert.Equal(t, Searching, m.mode)
	assert.Equal(t, []string{"apple.txt"}, displayedNames(m))
	assert.Equal(t, 0, m.cursor)

	press(t, m, "backspace")
	assert.Equal(t, []string{"banana", "apple.txt", "avocado.md"}, displayedNames(m))
}

func TestSearchEscClearsQuery(t *testing.T) {
	m := newModel(t, fixture(t), nil)

	press(t, m, "/", "a", "v")
	assert.Equal(t, []string{"avocado.md"}, displayedNames(m))

	press(t, m, "esc")
	assert.Equal(t, Browsing, m.mode)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, []string{"..", "banana", "apple.txt", "avocado.md"}, displayedNames(m))
}

func TestSearchEnterKeepsFilter(t *testing.T) {
	m := newModel(t, fixture(t), nil)

	press(t, m, "/", "a", "v", "enter")
	assert.Equal(t, Browsing, m.mode)
	assert.Equal(t, []string{"avocado.md"}, displayedNames(m))
}

func TestDescendResetsStateAndRecordsHistory(t *testing.T) {
	store := newStore(t)
	dir := fixture(t)
	m := newModel(t, dir, store)

	press(t, m, "/", "ban", "enter") // filter down to banana
	press(t, m, "right")

	assert.Equal(t, filepath.Join(dir, "banana"), m.dir)
	assert.Equal(t, 0, m.cursor)
	assert.Empty(t, m.input.Value())

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, filepath.Join(dir, "banana"), entries[0].Path)
}

func TestEnterOnDirectoryDescends(t *testing.T) {
	dir := fixture(t)
	m := newModel(t, dir, nil)

	press(t, m, "down") // banana
	press(t, m, "enter")

	assert.Equal(t, filepath.Join(dir, "banana"), m.dir)
	assert.False(t, m.Confirmed())
}

func TestEnterOnFileConfirmsContainingDirectory(t *testing.T) {
	dir := fixture(t)
	m := newModel(t, dir, nil)

	press(t, m, "down", "down") // apple.txt
	e, ok := m.highlighted()
	require.True(t, ok)
	assert.Equal(t, "apple.txt", e.Name)

	press(t, m, "enter")

	assert.True(t, m.Confirmed())
	assert.Equal(t, dir, m.Selected())
}

func TestEscFromBrowsingCancels(t *testing.T) {
	m := newModel(t, fixture(t), nil)

	press(t, m, "esc")

	assert.False(t, m.Confirmed())
	assert.Empty(t, m.Selected())
}

func TestParentHighlightsChildWeLeft(t *testing.T) {
	dir := fixture(t)
	m := newModel(t, filepath.Join(dir, "banana"), nil)

	press(t, m, "left")

	assert.Equal(t, dir, m.dir)
	e, ok := m.highlighted()
	require.True(t, ok)
	assert.Equal(t, "banana", e.Name)
}

func TestEmptyDirectoryHasNoSelection(t *testing.T) {
	root := t.TempDir()
	m := newModel(t, root, nil)

	// A fresh temp dir at the filesystem tmp root still shows "..".
	press(t, m, "down", "up", "down")
	assert.Less(t, m.cursorPos(), m.displayedLen()+1)

	press(t, m, "enter")
	// Enter descends into ".." or confirms; either way no crash and
	// the cursor stays in bounds.
	assert.GreaterOrEqual(t, m.cursorPos(), 0)
}

func TestHistoryModeToggleAndDescend(t *testing.T) {
	store := newStore(t)
	dir := fixture(t)
	other := t.TempDir()
	require.NoError(t, store.Record(context.Background(), other))

	m := newModel(t, dir, store)

	press(t, m, "v")
	assert.Equal(t, History, m.mode)
	require.NotEmpty(t, m.histEntries)
	// Most recent first: the start dir was recorded at startup.
	assert.Equal(t, dir, m.histEntries[0].Path)

	press(t, m, "v")
	assert.Equal(t, Browsing, m.mode)

	press(t, m, "v", "down", "enter")
	assert.Equal(t, Browsing, m.mode)
	assert.Equal(t, other, m.dir)
}

func TestHistoryEscReturnsToBrowsing(t *testing.T) {
	store := newStore(t)
	m := newModel(t, fixture(t), store)

	press(t, m, "v", "esc")
	assert.Equal(t, Browsing, m.mode)
	assert.False(t, m.Confirmed())
}

func TestCursorAlwaysInBounds(t *testing.T) {
	m := newModel(t, fixture(t), nil)

	press(t, m, "down", "down", "down", "down", "down", "down")
	assert.Equal(t, m.displayedLen()-1, m.cursorPos())

	press(t, m, "up", "up", "up", "up", "up", "up", "up")
	assert.Equal(t, 0, m.cursorPos())
}

func TestToggleHiddenRelists(t *testing.T) {
	dir := fixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret"), nil, 0o644))
	m := newModel(t, dir, nil)

	assert.NotContains(t, displayedNames(m), ".secret")
	press(t, m, ".")
	assert.Contains(t, displayedNames(m), ".secret")
	press(t, m, ".")
	assert.NotContains(t, displayedNames(m), ".secret")
}

func TestHighlightedEntryKinds(t *testing.T) {
	dir := fixture(t)
	m := newModel(t, dir, nil)

	e, ok := m.highlighted()
	require.True(t, ok)
	assert.Equal(t, fs.ParentName, e.Name)
	assert.True(t, e.IsDir())
}

func TestStartInHistoryMode(t *testing.T) {
	store := newStore(t)
	dir := fixture(t)
	m, err := New(Options{StartDir: dir, Store: store, StartHistory: true})
	require.NoError(t, err)

	assert.Equal(t, History, m.mode)
	require.NotEmpty(t, m.histEntries)
	assert.Equal(t, dir, m.histEntries[0].Path)
}

func TestHistoryDescendKeepsCursorMemory(t *testing.T) {
	store := newStore(t)
	dir := fixture(t)
	m := newModel(t, dir, store)

	press(t, m, "down", "right") // descend into banana, remembering it
	assert.Equal(t, "banana", m.dirCursors[dir])

	press(t, m, "v", "enter") // re-enter the most recent history entry

	assert.Equal(t, Browsing, m.mode)
	assert.Equal(t, "banana", m.dirCursors[dir])
	for _, name := range m.dirCursors {
		assert.False(t, filepath.IsAbs(name), "cursor memory holds entry names, not paths: %q", name)
	}
}
