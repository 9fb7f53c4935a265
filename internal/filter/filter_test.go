package filter

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickswitch/internal/fs"
)

func entries(names ...string) []fs.Entry {
	out := make([]fs.Entry, len(names))
	for i, n := range names {
		out[i] = fs.Entry{Name: n}
	}
	return out
}

func TestApplyEmptyQueryMatchesAll(t *testing.T) {
	es := entries("apple", "banana", "avocado")
	assert.Equal(t, []int{0, 1, 2}, Apply(es, ""))
}

func TestApplyNarrowsAsQueryGrows(t *testing.T) {
	es := entries("banana", "apple", "avocado")

	assert.Equal(t, []int{0, 1, 2}, Apply(es, "a"))
	assert.Equal(t, []int{1, 2}, Apply(es, "ap"))
	assert.Equal(t, []int{1}, Apply(es, "app"))
	assert.Empty(t, Apply(es, "appx"))
}

func TestApplyCaseInsensitive(t *testing.T) {
	es := entries("README.md", "Makefile")
	assert.Equal(t, []int{0}, Apply(es, "readme"))
	assert.Equal(t, []int{1}, Apply(es, "MAKE"))
}

func TestApplyIncludesParentEntry(t *testing.T) {
	es := entries(fs.ParentName, "notes..txt")
	assert.Equal(t, []int{0, 1}, Apply(es, ".."))
}

func TestRanges(t *testing.T) {
	assert.Nil(t, Ranges("abc", ""))
	assert.Equal(t, [][2]int{{0, 2}}, Ranges("Apple", "ap"))
	assert.Equal(t, [][2]int{{0, 1}, {3, 4}}, Ranges("abca", "a"))
}

func TestRangesStayOnRuneBoundaries(t *testing.T) {
	// "İ" is two bytes but lowercases to one-byte "i"; offsets must
	// index the original string, not its lowered form.
	name := "İstanbul"
	ranges := Ranges(name, "i")
	require.NotEmpty(t, ranges)
	assert.Equal(t, [2]int{0, 2}, ranges[0])
	assert.Equal(t, "İ", name[ranges[0][0]:ranges[0][1]])

	for _, r := range ranges {
		assert.True(t, utf8.ValidString(name[r[0]:r[1]]))
	}
}
