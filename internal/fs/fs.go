// Package fs lists directory contents for the navigator. Listings are
// sorted directories-first and carry a synthetic ".." entry so the UI
// can walk upward without special cases.
package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"quickswitch/internal/errors"
)

// EntryKind classifies a directory entry.
type EntryKind int

const (
	KindDir EntryKind = iota
	KindFile
	KindSymlink
	KindOther
)

// String returns a short label used in listings and logs.
func (k EntryKind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is a single item in a directory listing.
type Entry struct {
	Name    string
	Path    string // Absolute path
	Kind    EntryKind
	Size    int64
	ModTime time.Time
}

// IsDir reports whether the entry can be entered. Symlinks are reported
// as symlinks, not followed.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// ParentName is the display name of the synthetic parent entry.
const ParentName = ".."

// Options controls what List includes.
type Options struct {
	ShowHidden    bool
	Ignore        []glob.Glob
	IncludeParent bool
}

// List reads the directory at path and returns its visible entries,
// directories first, each group sorted case-insensitively by name. When
// IncludeParent is set and path is not the filesystem root, a synthetic
// ".." entry is prepended. Failures are classified path errors.
func List(path string, opts Options) ([]Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.FromListError(path, err)
	}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.FromListError(abs, err)
	}

	entries := make([]Entry, 0, len(dirEntries)+1)
	for _, de := range dirEntries {
		name := de.Name()
		if !opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if ignored(name, opts.Ignore) {
			continue
		}

		e := Entry{
			Name: name,
			Path: filepath.Join(abs, name),
			Kind: kindOf(de),
		}
		// Entry metadata is best effort; a file vanishing between the
		// ReadDir and the Info call still lists with zero values.
		if info, err := de.Info(); err == nil {
			e.Size = info.Size()
			e.ModTime = info.ModTime()
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	if opts.IncludeParent {
		parent := filepath.Dir(abs)
		if parent != abs {
			entries = append([]Entry{{
				Name: ParentName,
				Path: parent,
				Kind: KindDir,
			}}, entries...)
		}
	}

	return entries, nil
}

func ignored(name string, patterns []glob.Glob) bool {
	for _, g := range patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func kindOf(de os.DirEntry) EntryKind {
	mode := de.Type()
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case de.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}
