// Package filter implements the incremental substring match used by
// search mode. Matching is pure: it never touches the filesystem.
package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"quickswitch/internal/fs"
)

// Apply returns the indices of entries whose display name contains
// query, case-insensitively, preserving listing order. An empty query
// matches everything. The whole entry set is searched, the synthetic
// parent entry included.
func Apply(entries []fs.Entry, query string) []int {
	matched := make([]int, 0, len(entries))
	if query == "" {
		for i := range entries {
			matched = append(matched, i)
		}
		return matched
	}

	needle := strings.ToLower(query)
	for i, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			matched = append(matched, i)
		}
	}
	return matched
}

// Ranges returns the half-open [start, end) byte ranges of query inside
// name, case-insensitively, for highlight rendering. Offsets index the
// original string and always fall on rune boundaries, so callers can
// slice name directly. Overlapping hits are merged left to right.
func Ranges(name, query string) [][2]int {
	if query == "" {
		return nil
	}

	var out [][2]int
	for start := 0; start < len(name); {
		begin, end := foldIndex(name[start:], query)
		if begin < 0 {
			break
		}
		out = append(out, [2]int{start + begin, start + end})
		start += end
	}
	return out
}

// foldIndex finds the first case-insensitive occurrence of query in s
// and returns its byte offsets, or -1 when absent.
func foldIndex(s, query string) (int, int) {
	for i := range s {
		if n, ok := foldPrefix(s[i:], query); ok {
			return i, i + n
		}
	}
	return -1, -1
}

// foldPrefix reports whether s starts with query under simple case
// folding, and the byte length of the matched prefix of s. Lengths can
// differ between s and query when folding changes a rune's encoding.
func foldPrefix(s, query string) (int, bool) {
	n := 0
	for _, qr := range query {
		sr, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0, false
		}
		if unicode.ToLower(sr) != unicode.ToLower(qr) {
			return 0, false
		}
		n += size
	}
	return n, true
}
