// Package tui implements the interactive navigator: a two-pane
// bubbletea program with a directory list on the left and a preview of
// the highlighted entry on the right.
package tui

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"

	"quickswitch/internal/config"
	"quickswitch/internal/filter"
	"quickswitch/internal/fs"
	"quickswitch/internal/history"
	"quickswitch/internal/log"
	"quickswitch/internal/preview"
	"quickswitch/internal/watch"
)

// Mode is the navigator's interaction mode.
type Mode int

const (
	Browsing Mode = iota
	Searching
	History
)

func (m Mode) String() string {
	switch m {
	case Searching:
		return "SEARCH"
	case History:
		return "HISTORY"
	default:
		return "BROWSE"
	}
}

const statusTimeout = 4 * time.Second

// Model is the navigator state. All mutation happens on the bubbletea
// update goroutine; background work communicates through messages.
type Model struct {
	cfg        *config.Config
	keys       KeyMap
	styles     Styles
	store      *history.Store
	dispatcher *preview.Dispatcher
	watcher    *watch.Watcher

	mode Mode

	dir        string
	entries    []fs.Entry
	matched    []int
	cursor     int
	showHidden bool
	ignore     []glob.Glob

	input textinput.Model

	histEntries []history.Entry
	histCursor  int

	previewGen     int
	previewPayload preview.Payload
	previewReady   bool

	statusMsg   string
	statusIsErr bool
	statusID    int

	// Remembered highlight per directory, by entry name.
	dirCursors map[string]string

	width       int
	height      int
	showingHelp bool

	confirmed bool
	selected  string
}

// Options configures a new Model.
type Options struct {
	Config       *config.Config
	Store        *history.Store // nil disables history persistence
	Watcher      *watch.Watcher // nil disables live refresh
	StartDir     string
	StartHistory bool // open in history mode
}

// New builds the navigator rooted at opts.StartDir. The initial listing
// must succeed; everything after that degrades gracefully.
func New(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}

	ignore, err := cfg.CompiledIgnores()
	if err != nil {
		return nil, err
	}

	start, err := filepath.Abs(opts.StartDir)
	if err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "type to filter"
	input.CharLimit = 256

	m := &Model{
		cfg:        cfg,
		keys:       DefaultKeyMap(),
		styles:     NewStyles(cfg),
		store:      opts.Store,
		watcher:    opts.Watcher,
		showHidden: cfg.Listing.ShowHidden,
		ignore:     ignore,
		input:      input,
		dirCursors: make(map[string]string),
		dispatcher: preview.NewDispatcher(preview.Limits{
			MaxLines:      cfg.Preview.MaxLines,
			MaxDirEntries: cfg.Preview.MaxDirEntries,
			MaxFileBytes:  cfg.Preview.MaxFileBytes,
		}),
	}

	if err := m.setDir(start); err != nil {
		return nil, err
	}
	m.recordVisit(start)

	if opts.StartHistory {
		m.enterHistory()
	}

	return m, nil
}

// Confirmed reports whether the session ended with a confirmed
// selection.
func (m *Model) Confirmed() bool { return m.confirmed }

// Selected returns the confirmed directory path.
func (m *Model) Selected() string { return m.selected }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.previewCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// displayedLen is the length of the list the cursor moves over.
func (m *Model) displayedLen() int {
	if m.mode == History {
		return len(m.histEntries)
	}
	return len(m.matched)
}

// cursorPos returns the active cursor for the current mode.
func (m *Model) cursorPos() int {
	if m.mode == History {
		return m.histCursor
	}
	return m.cursor
}

// highlighted returns the entry under the cursor, if any. History rows
// surface as directory entries.
func (m *Model) highlighted() (fs.Entry, bool) {
	if m.mode == History {
		if m.histCursor < 0 || m.histCursor >= len(m.histEntries) {
			return fs.Entry{}, false
		}
		h := m.histEntries[m.histCursor]
		return fs.Entry{Name: h.Path, Path: h.Path, Kind: fs.KindDir}, true
	}
	if m.cursor < 0 || m.cursor >= len(m.matched) {
		return fs.Entry{}, false
	}
	return m.entries[m.matched[m.cursor]], true
}

// clampCursor keeps the selection inside the displayed bounds.
func (m *Model) clampCursor() {
	n := m.displayedLen()
	cur := m.cursorPos()
	if cur >= n {
		cur = n - 1
	}
	if cur < 0 {
		cur = 0
	}
	if m.mode == History {
		m.histCursor = cur
	} else {
		m.cursor = cur
	}
}

// refilter recomputes the filtered view for the current query and
// clamps the selection.
func (m *Model) refilter() {
	m.matched = filter.Apply(m.entries, m.input.Value())
	m.clampCursor()
}

// setDir lists path and makes it the current directory. The query is
// cleared, the cursor restored from the per-directory memory, and the
// watcher retargeted. On failure the previous listing stays in place.
func (m *Model) setDir(path string) error {
	entries, err := fs.List(path, fs.Options{
		ShowHidden:    m.showHidden,
		Ignore:        m.ignore,
		IncludeParent: true,
	})
	if err != nil {
		return err
	}

	// History rows surface their full path as the name, which would
	// clobber the remembered browse cursor for this directory.
	if m.dir != "" && m.mode != History {
		if e, ok := m.highlighted(); ok {
			m.dirCursors[m.dir] = e.Name
		}
	}

	m.dir = path
	m.entries = entries
	m.input.Reset()
	m.matched = filter.Apply(m.entries, "")
	m.cursor = 0
	if name, ok := m.dirCursors[path]; ok {
		m.selectByName(name)
	}

	if m.watcher != nil {
		if err := m.watcher.Retarget(path); err != nil {
			log.Warnf("watch retarget failed: %v", err)
		}
	}

	log.Debugf("entered %s (%d entries)", path, len(entries))
	return nil
}

// relist refreshes the current directory in place, keeping the cursor
// on the same entry name when it survives the refresh.
func (m *Model) relist() {
	var keep string
	if e, ok := m.highlighted(); ok {
		keep = e.Name
	}

	entries, err := fs.List(m.dir, fs.Options{
		ShowHidden:    m.showHidden,
		Ignore:        m.ignore,
		IncludeParent: true,
	})
	if err != nil {
		log.Warnf("refresh of %s failed: %v", m.dir, err)
		return
	}

	m.entries = entries
	m.refilter()
	if keep != "" {
		m.selectByName(keep)
	}
}

// selectByName moves the cursor to the displayed entry with the given
// name, if present.
func (m *Model) selectByName(name string) {
	for pos, idx := range m.matched {
		if m.entries[idx].Name == name {
			m.cursor = pos
			return
		}
	}
}

// enterHistory swaps the displayed list to the visit history.
func (m *Model) enterHistory() {
	m.histEntries = nil
	if m.store != nil {
		entries, err := m.store.List(context.Background())
		if err != nil {
			log.Warnf("history load failed: %v", err)
		} else {
			m.histEntries = entries
		}
	}
	m.mode = History
	m.histCursor = 0
}

// recordVisit persists a directory visit. Persistence failures are
// logged, never fatal.
func (m *Model) recordVisit(path string) {
	if m.store == nil {
		return
	}
	if err := m.store.Record(context.Background(), path); err != nil {
		log.Warnf("history record failed: %v", err)
	}
}

// previewMsg carries a finished preview. Stale generations are dropped.
type previewMsg struct {
	gen     int
	payload preview.Payload
}

// clearStatusMsg expires a transient status message.
type clearStatusMsg struct{ id int }

// dirChangedMsg reports on-disk changes to the current directory.
type dirChangedMsg struct{ change watch.Change }

// previewCmd starts a preview build for the highlighted entry. The
// generation counter supersedes any job still in flight.
func (m *Model) previewCmd() tea.Cmd {
	entry, ok := m.highlighted()
	if !ok {
		m.previewGen++
		m.previewPayload = preview.Payload{Kind: preview.KindEmpty}
		m.previewReady = true
		return nil
	}

	m.previewGen++
	m.previewReady = false
	gen := m.previewGen
	d := m.dispatcher
	w, h := m.previewSize()

	return func() tea.Msg {
		return previewMsg{gen: gen, payload: d.For(entry, w, h)}
	}
}

// setStatus shows a transient message in the status bar.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusIsErr = isErr
	m.statusID++
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// waitForChange blocks on the watcher channel and republishes the
// change as a message.
func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return dirChangedMsg{change: change}
	}
}
