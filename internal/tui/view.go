package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"quickswitch/internal/filter"
	"quickswitch/internal/fs"
	"quickswitch/internal/preview"
)

const (
	minWidth  = 40
	minHeight = 8
	// Fraction of the width given to the entry list.
	listShare = 0.4
)

// listWidth returns the inner width of the list pane.
func (m *Model) listWidth() int {
	w := int(float64(m.width) * listShare)
	if w < 20 {
		w = 20
	}
	return w
}

// previewSize returns the inner cell dimensions of the preview pane.
func (m *Model) previewSize() (int, int) {
	// Borders and padding cost four columns per pane.
	w := m.width - m.listWidth() - 8
	h := m.height - 4
	if w < 10 {
		w = 10
	}
	if h < 4 {
		h = 4
	}
	return w, h
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		return "window too small"
	}

	header := m.renderHeader()
	_, paneHeight := m.previewSize()

	list := m.styles.ActivePane.
		Width(m.listWidth()).
		Height(paneHeight).
		Render(m.renderList(paneHeight))

	previewWidth, _ := m.previewSize()
	previewPane := m.styles.Pane.
		Width(previewWidth + 2).
		Height(paneHeight).
		Render(m.renderPreview(previewWidth, paneHeight))

	panes := lipgloss.JoinHorizontal(lipgloss.Top, list, previewPane)
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, footer)
}

func (m *Model) renderHeader() string {
	mode := m.styles.Title.Render(fmt.Sprintf("[%s]", m.mode))
	path := m.styles.Muted.Render(truncateLeft(m.dir, m.width-lipgloss.Width(mode)-2))
	return mode + " " + path
}

func (m *Model) renderFooter() string {
	if m.showingHelp {
		var parts []string
		for _, row := range m.keys.FullHelp() {
			for _, b := range row {
				parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
			}
		}
		return m.styles.StatusBar.Render(truncate(strings.Join(parts, "  "), m.width))
	}

	if m.mode == Searching {
		return m.styles.SearchPrompt.Render(m.input.View())
	}

	if m.statusMsg != "" {
		style := m.styles.StatusBar
		if m.statusIsErr {
			style = m.styles.StatusError
		}
		return style.Render(truncate(m.statusMsg, m.width))
	}

	if q := m.input.Value(); q != "" {
		return m.styles.StatusBar.Render(truncate(fmt.Sprintf("filter: %s (%d/%d)", q, len(m.matched), entryCount(m.entries)), m.width))
	}

	return m.styles.StatusBar.Render(truncate("?: help  /: search  v: history  enter: select", m.width))
}

// renderList draws the displayed entries with a scroll window that
// keeps the cursor visible.
func (m *Model) renderList(height int) string {
	width := m.listWidth() - 2

	if m.mode == History {
		return m.renderHistoryList(width, height)
	}

	if len(m.matched) == 0 {
		if m.input.Value() != "" {
			return m.styles.Muted.Render("no matches")
		}
		return m.styles.Muted.Render("empty directory")
	}

	offset := scrollOffset(m.cursor, len(m.matched), height)
	var b strings.Builder
	for pos := offset; pos < len(m.matched) && pos < offset+height; pos++ {
		entry := m.entries[m.matched[pos]]
		line := m.renderEntry(entry, width, pos == m.cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderHistoryList(width, height int) string {
	if len(m.histEntries) == 0 {
		return m.styles.Muted.Render("no history yet")
	}

	offset := scrollOffset(m.histCursor, len(m.histEntries), height)
	var b strings.Builder
	for pos := offset; pos < len(m.histEntries) && pos < offset+height; pos++ {
		h := m.histEntries[pos]
		label := fmt.Sprintf("%s (%d)", truncateLeft(h.Path, width-6), h.Visits)
		if pos == m.histCursor {
			b.WriteString(m.styles.Selected.Render(truncate(label, width)))
		} else {
			b.WriteString(m.styles.Directory.Render(truncate(label, width)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderEntry(entry fs.Entry, width int, selected bool) string {
	name := entry.Name
	if entry.IsDir() && name != fs.ParentName {
		name += "/"
	}
	name = truncate(name, width)

	if selected {
		return m.styles.Selected.Render(name)
	}

	if q := m.input.Value(); q != "" {
		if ranges := filter.Ranges(name, q); len(ranges) > 0 {
			return m.renderHighlighted(name, ranges, entry.Kind)
		}
	}

	switch entry.Kind {
	case fs.KindDir:
		return m.styles.Directory.Render(name)
	case fs.KindSymlink:
		return m.styles.Symlink.Render(name)
	default:
		return m.styles.File.Render(name)
	}
}

// renderHighlighted paints the matched substring ranges of name.
func (m *Model) renderHighlighted(name string, ranges [][2]int, kind fs.EntryKind) string {
	base := m.styles.File
	if kind == fs.KindDir {
		base = m.styles.Directory
	}

	var b strings.Builder
	prev := 0
	for _, r := range ranges {
		if r[0] > len(name) || r[1] > len(name) {
			break
		}
		b.WriteString(base.Render(name[prev:r[0]]))
		b.WriteString(m.styles.Match.Render(name[r[0]:r[1]]))
		prev = r[1]
	}
	b.WriteString(base.Render(name[prev:]))
	return b.String()
}

func (m *Model) renderPreview(width, height int) string {
	if !m.previewReady {
		return m.styles.Muted.Render("loading...")
	}

	p := m.previewPayload
	switch p.Kind {
	case preview.KindEmpty:
		return ""

	case preview.KindDirectory:
		if p.EmptyDir {
			return m.styles.Muted.Render("Empty directory")
		}
		lines := make([]string, 0, len(p.Children)+1)
		for i, child := range p.Children {
			if i >= height-1 {
				break
			}
			lines = append(lines, truncate(child, width))
		}
		if p.Omitted > 0 && len(lines) < height {
			lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("... and %d more items", p.Omitted)))
		}
		return strings.Join(lines, "\n")

	case preview.KindText, preview.KindDocument:
		lines := p.Lines
		if len(lines) > height-1 {
			lines = lines[:height-1]
		}
		out := make([]string, 0, len(lines)+1)
		for _, line := range lines {
			out = append(out, truncate(line, width))
		}
		if p.Truncated {
			out = append(out, m.styles.Muted.Render("..."))
		}
		return strings.Join(out, "\n")

	case preview.KindImage:
		rows := p.Image.Rows
		if len(rows) > height {
			rows = rows[:height]
		}
		caption := m.styles.Muted.Render(fmt.Sprintf("%s %dx%d", p.Image.Format, p.Image.Bounds.X, p.Image.Bounds.Y))
		return strings.Join(append(rows, caption), "\n")

	case preview.KindBinary:
		return m.styles.Muted.Render(fmt.Sprintf("binary file, %s", humanSize(p.Size)))

	case preview.KindError:
		if p.Err != nil {
			return m.styles.StatusError.Render(truncate(p.Err.Error(), width))
		}
		return m.styles.StatusError.Render("preview unavailable")
	}

	return ""
}

// scrollOffset keeps cursor inside a window of the given height.
func scrollOffset(cursor, total, height int) int {
	if total <= height {
		return 0
	}
	offset := cursor - height/2
	if offset < 0 {
		offset = 0
	}
	if offset > total-height {
		offset = total - height
	}
	return offset
}

// entryCount is the number of real entries, excluding the parent row.
func entryCount(entries []fs.Entry) int {
	n := len(entries)
	for _, e := range entries {
		if e.Name == fs.ParentName {
			n--
		}
	}
	return n
}

func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// truncateLeft keeps the tail of long paths visible.
func truncateLeft(s string, width int) string {
	if width < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return "…" + runewidth.TruncateLeft(s, runewidth.StringWidth(s)-width+1, "")
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
