package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quickswitch/internal/preview"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Image rasters are sized to the pane, so rebuild the preview.
		return m, m.previewCmd()

	case previewMsg:
		if msg.gen != m.previewGen {
			return m, nil
		}
		m.previewPayload = msg.payload
		m.previewReady = true
		if msg.payload.Kind == preview.KindError && msg.payload.Err != nil {
			return m, m.setStatus(msg.payload.Err.Error(), true)
		}
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusMsg = ""
			m.statusIsErr = false
		}
		return m, nil

	case dirChangedMsg:
		cmds := []tea.Cmd{waitForChange(m.watcher)}
		if m.mode != History && msg.change.Dir == m.dir {
			m.relist()
			cmds = append(cmds, m.previewCmd())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c cancels from any mode, including mid-search.
	if msg.String() == "ctrl+c" {
		m.confirmed = false
		return m, tea.Quit
	}

	if m.mode == Searching {
		return m.handleSearchKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// handleSearchKey edits the query. Printable keys go to the text input;
// everything else is navigation.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Reset()
		m.input.Blur()
		m.mode = Browsing
		m.refilter()
		return m, m.previewCmd()

	case "enter":
		// Accept the query and keep the narrowed view.
		m.input.Blur()
		m.mode = Browsing
		return m, nil

	case "up":
		return m.moveCursor(-1)

	case "down":
		return m.moveCursor(1)
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
		return m, tea.Batch(cmd, m.previewCmd())
	}
	return m, cmd
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case key.Matches(msg, keys.Quit):
		m.confirmed = false
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		if m.mode == History {
			m.mode = Browsing
			return m, m.previewCmd()
		}
		m.confirmed = false
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		return m.moveCursor(-1)

	case key.Matches(msg, keys.Down):
		return m.moveCursor(1)

	case key.Matches(msg, keys.Parent):
		if m.mode == History {
			return m, nil
		}
		return m.gotoParent()

	case key.Matches(msg, keys.Descend):
		entry, ok := m.highlighted()
		if !ok || !entry.IsDir() {
			return m, nil
		}
		return m.enterDir(entry.Path)

	case key.Matches(msg, keys.Confirm):
		entry, ok := m.highlighted()
		if ok && entry.IsDir() {
			return m.enterDir(entry.Path)
		}
		// A file highlight confirms its containing directory; an empty
		// view confirms the current directory.
		return m.confirmSelection(m.dir)

	case key.Matches(msg, keys.Search):
		if m.mode == History {
			return m, nil
		}
		m.mode = Searching
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.History):
		if m.mode == History {
			m.mode = Browsing
			return m, m.previewCmd()
		}
		m.enterHistory()
		return m, m.previewCmd()

	case key.Matches(msg, keys.ToggleHid):
		if m.mode == History {
			return m, nil
		}
		m.showHidden = !m.showHidden
		m.relist()
		return m, m.previewCmd()

	case key.Matches(msg, keys.Help):
		m.showingHelp = !m.showingHelp
		return m, nil
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	n := m.displayedLen()
	if n == 0 {
		return m, nil
	}

	cur := m.cursorPos() + delta
	if cur < 0 {
		cur = 0
	}
	if cur >= n {
		cur = n - 1
	}

	if m.mode == History {
		if cur == m.histCursor {
			return m, nil
		}
		m.histCursor = cur
	} else {
		if cur == m.cursor {
			return m, nil
		}
		m.cursor = cur
	}
	return m, m.previewCmd()
}

// gotoParent moves up one level and highlights the directory we left.
func (m *Model) gotoParent() (tea.Model, tea.Cmd) {
	parent := filepath.Dir(m.dir)
	if parent == m.dir {
		return m, nil
	}

	child := filepath.Base(m.dir)
	if err := m.setDir(parent); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.selectByName(child)
	return m, m.previewCmd()
}

// enterDir descends into path. A failed listing keeps the previous view
// and surfaces the error in the status bar.
func (m *Model) enterDir(path string) (tea.Model, tea.Cmd) {
	if err := m.setDir(path); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.recordVisit(path)
	if m.mode == History {
		m.mode = Browsing
	}
	return m, m.previewCmd()
}

// confirmSelection ends the session with path as the handoff target.
func (m *Model) confirmSelection(path string) (tea.Model, tea.Cmd) {
	m.recordVisit(path)
	m.confirmed = true
	m.selected = path
	return m, tea.Quit
}
