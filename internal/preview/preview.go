// Package preview builds the right-pane content for the highlighted
// entry. Every builder works within configured budgets so previewing a
// huge file or directory stays cheap.
package preview

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"quickswitch/internal/errors"
	"quickswitch/internal/fs"
	"quickswitch/internal/log"
)

// Kind identifies which payload variant a preview carries.
type Kind int

const (
	KindEmpty Kind = iota
	KindDirectory
	KindText
	KindImage
	KindDocument
	KindBinary
	KindError
)

// Payload is the outcome of previewing one entry. Exactly one variant
// is populated, per Kind.
type Payload struct {
	Kind Kind
	Path string

	// KindDirectory
	Children []string
	Omitted  int // Children beyond the cap
	EmptyDir bool

	// KindText and KindDocument
	Lines     []string // Already numbered
	Truncated bool

	// KindImage
	Image ImageRaster

	// KindBinary
	Size int64

	// KindError
	Err error
}

// Limits bounds how much work a preview may do.
type Limits struct {
	MaxLines      int
	MaxDirEntries int
	MaxFileBytes  int64
}

// Dispatcher routes an entry to the right preview builder.
type Dispatcher struct {
	limits Limits
}

// NewDispatcher returns a dispatcher with the given budgets.
func NewDispatcher(limits Limits) *Dispatcher {
	if limits.MaxLines < 1 {
		limits.MaxLines = 100
	}
	if limits.MaxDirEntries < 1 {
		limits.MaxDirEntries = 100
	}
	if limits.MaxFileBytes < 1 {
		limits.MaxFileBytes = 5 * 1024 * 1024
	}
	return &Dispatcher{limits: limits}
}

// For builds the preview for entry. Failures come back as a KindError
// payload rather than an error so the UI always has something to show.
// width and height are the target cell dimensions for image rasters.
func (d *Dispatcher) For(entry fs.Entry, width, height int) Payload {
	log.Debugf("building preview for %s (%s)", entry.Path, entry.Kind)

	if entry.Kind == fs.KindDir {
		return d.directory(entry.Path)
	}

	info, err := os.Stat(entry.Path)
	if err != nil {
		return errorPayload(entry.Path, errors.FromListError(entry.Path, err))
	}
	if info.IsDir() {
		// Symlink to a directory
		return d.directory(entry.Path)
	}

	switch classify(entry.Path) {
	case KindImage:
		return d.image(entry.Path, info.Size(), width, height)
	case KindDocument:
		return d.document(entry.Path, info.Size())
	default:
		return d.text(entry.Path, info.Size())
	}
}

// classify guesses the preview family from the file extension. Files
// that look textual are still sniffed for binary content on read.
func classify(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp":
		return KindImage
	case ".pdf":
		return KindDocument
	default:
		return KindText
	}
}

// looksBinary reports whether data appears to be non-text. A NUL byte
// or invalid UTF-8 outside a trailing partial rune disqualifies it.
func looksBinary(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}
	if utf8.Valid(data) {
		return false
	}
	// The read window may end mid-rune; drop a trailing partial rune
	// before giving up on the data as text.
	cut := len(data)
	for back := 1; back < utf8.UTFMax && back <= len(data); back++ {
		if utf8.RuneStart(data[len(data)-back]) {
			cut = len(data) - back
			break
		}
	}
	return cut == len(data) || !utf8.Valid(data[:cut])
}

func errorPayload(path string, err error) Payload {
	log.WithFields(log.F("path", path)).Warnf("preview failed: %v", err)
	return Payload{Kind: KindError, Path: path, Err: err}
}
