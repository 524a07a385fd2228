// Package wcwidth provides functions for determining the number of terminal
// columns a string or rune occupies.
package wcwidth

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/width"
)

var (
	overrideMutex sync.RWMutex
	override      = map[rune]int{}
)

// OfRune returns the column width of a rune.
func OfRune(r rune) int {
	overrideMutex.RLock()
	w, ok := override[r]
	overrideMutex.RUnlock()
	if ok {
		return w
	}

	switch {
	case r == 0,
		unicode.Is(unicode.Mn, r),
		unicode.Is(unicode.Me, r),
		unicode.Is(unicode.Cf, r):
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// Override overrides the column width of a rune to be a specific non-negative
// value. OfRune(r) will return w if w >= 0, or remove the override if w < 0.
func Override(r rune, w int) {
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	if w < 0 {
		delete(override, r)
		return
	}
	override[r] = w
}

// Unoverride removes the column width override for a rune.
func Unoverride(r rune) {
	Override(r, -1)
}

// Of returns the column width of a string, assuming no soft line breaks.
func Of(s string) int {
	w := 0
	for _, r := range s {
		w += OfRune(r)
	}
	return w
}

// Trim trims the string s so that it uses at most wmax columns.
func Trim(s string, wmax int) string {
	w := 0
	for i, r := range s {
		w += OfRune(r)
		if w > wmax {
			return s[:i]
		}
	}
	return s
}

// Force forces the string s to the given column width by trimming and padding.
func Force(s string, width int) string {
	s = Trim(s, width)
	if w := Of(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
