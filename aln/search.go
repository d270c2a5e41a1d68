package aln

import (
	"sort"
	"strings"
)

// Compare is a three way row comparator.
type Compare func(a, b *Row) int

// AlphaOrder orders rows by name, then start, then end.
func AlphaOrder(a, b *Row) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := cmpInt(a.Start, b.Start); c != 0 {
		return c
	}
	return cmpInt(a.End, b.End)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Search looks for a probe in an ordered collection of n elements.
// cmp(i) compares the probe to element i. It returns the index of an
// equal element and true, or false and the index of the last element
// smaller than the probe (-1 if there is none), so that the probe
// belongs right after the returned index.
//
// The ends are checked first, so appending to an ordered collection
// costs O(1).
func Search(n int, cmp func(i int) int) (int, bool) {
	if n == 0 {
		return -1, false
	}
	c := cmp(0)
	switch {
	case c == 0:
		return 0, true
	case c < 0:
		return -1, false
	}
	c = cmp(n - 1)
	switch {
	case c == 0:
		return n - 1, true
	case c > 0:
		return n - 1, false
	}
	// element lo < probe < element hi
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		c = cmp(mid)
		switch {
		case c == 0:
			return mid, true
		case c < 0:
			hi = mid
		default:
			lo = mid
		}
	}
	return lo, false
}

// ArrayFind searches rows, which must be sorted by cmp, for probe.
func ArrayFind(rows []*Row, probe *Row, cmp Compare) (int, bool) {
	return Search(len(rows), func(i int) int {
		return cmp(probe, rows[i])
	})
}

// AlignFind returns the index of the row equal to k, or -1. The rows
// need not be ordered.
func AlignFind(rows []*Row, k Key) int {
	for i, r := range rows {
		if r.Key() == k {
			return i
		}
	}
	return -1
}

// SortRows sorts rows stably by a comparator.
func SortRows(rows []*Row, cmp Compare) {
	sort.SliceStable(rows, func(i, j int) bool {
		return cmp(rows[i], rows[j]) < 0
	})
}

// ByNr orders rows by their display position.
func ByNr(a, b *Row) int {
	return cmpInt(a.Nr, b.Nr)
}

// Order numbers the rows 1, 2, 3, ... in their current order.
func Order(rows []*Row) {
	for i, r := range rows {
		r.Nr = i + 1
	}
}

// Order10 numbers the rows 10, 20, 30, ... leaving room for rows to
// be slotted in between.
func Order10(rows []*Row) {
	for i, r := range rows {
		r.Nr = (i + 1) * 10
	}
}
