// Package edit removes and inserts alignment columns and removes
// sequences by gap content, redundancy, outlier status or score.
//
// All operations leave the rows numbered 1..N. Bulk removals check
// their effect first and return ErrRemoveAll, without changing the
// alignment, if nothing would be left.
package edit

import (
	"errors"
	"fmt"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/bio"
	"bitbucket.org/Davydov/belvu/cons"
	"bitbucket.org/Davydov/belvu/order"
)

// log is the global logging variable.
var log = logging.MustGetLogger("edit")

var (
	// ErrRemoveAll is returned when an operation would remove every
	// sequence or every column.
	ErrRemoveAll = errors.New("operation would remove the whole alignment")
	// ErrSegmentOrder is returned for match segments which are not in
	// increasing, non-overlapping order.
	ErrSegmentOrder = errors.New("match segments out of order or overlapping")
)

// epsilon allows for rounding when comparing gap fractions.
const epsilon = 1e-7

// RemoveColumns deletes columns from..to (1-based, inclusive). When
// the first or the last column is removed, the coordinates of the
// sequences are moved past the deleted residues.
func RemoveColumns(a *aln.Alignment, from, to int) error {
	if from < 1 || to > a.MaxLen || from > to {
		return fmt.Errorf("columns %d-%d out of range 1-%d", from, to, a.MaxLen)
	}
	if from == 1 && to == a.MaxLen {
		return ErrRemoveAll
	}
	removeColumns(a, from, to)
	return nil
}

func removeColumns(a *aln.Alignment, from, to int) {
	for _, r := range a.Rows {
		if !r.IsMarkup() {
			n := 0
			for _, c := range r.Seq[from-1 : to] {
				if !bio.IsGap(c) {
					n++
				}
			}
			step := 1
			if r.Start > r.End {
				step = -1
			}
			if from == 1 {
				r.Start += step * n
			}
			if to == a.MaxLen {
				r.End -= step * n
			}
		}
		r.Seq = append(r.Seq[:from-1], r.Seq[to:]...)
	}
	a.MaxLen -= to - from + 1
}

// gapFraction returns the fraction of sequences with a gap in a column.
func gapFraction(a *aln.Alignment, col int) float64 {
	gaps, n := 0, 0
	for _, r := range a.Rows {
		if r.IsMarkup() {
			continue
		}
		n++
		if bio.IsGap(r.Seq[col]) {
			gaps++
		}
	}
	if n == 0 {
		return 1
	}
	return float64(gaps) / float64(n)
}

// RemoveEmptyColumns deletes the columns in which the fraction of
// gapped sequences reaches cutoff (0..1). It returns the number of
// columns removed.
func RemoveEmptyColumns(a *aln.Alignment, cutoff float64) (int, error) {
	empty := make([]bool, a.MaxLen)
	n := 0
	for col := range empty {
		if gapFraction(a, col) >= cutoff-epsilon {
			empty[col] = true
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if n == a.MaxLen {
		return 0, ErrRemoveAll
	}
	// right to left, one run of columns at a time
	for col := a.MaxLen - 1; col >= 0; col-- {
		if !empty[col] {
			continue
		}
		to := col
		for col > 0 && empty[col-1] {
			col--
		}
		removeColumns(a, col+1, to+1)
	}
	log.Infof("removed %d columns with at least %.0f%% gaps", n, 100*cutoff)
	return n, nil
}

// InsertColumns puts n gap columns after column after (0 inserts them
// before the first column).
func InsertColumns(a *aln.Alignment, after, n int) error {
	if after < 0 || after > a.MaxLen || n < 0 {
		return fmt.Errorf("cannot insert %d columns after column %d of %d", n, after, a.MaxLen)
	}
	for _, r := range a.Rows {
		seq := make([]byte, 0, len(r.Seq)+n)
		seq = append(seq, r.Seq[:after]...)
		for i := 0; i < n; i++ {
			seq = append(seq, '.')
		}
		r.Seq = append(seq, r.Seq[after:]...)
	}
	a.MaxLen += n
	return nil
}

// removeRows deletes the sequence rows for which drop returns true and
// renumbers the rest. Nothing is removed if no sequence would be left.
func removeRows(a *aln.Alignment, drop func(i int, r *aln.Row) bool) (int, error) {
	doomed := make([]bool, len(a.Rows))
	n, nseq := 0, 0
	for i, r := range a.Rows {
		if r.IsMarkup() {
			continue
		}
		nseq++
		if drop(i, r) {
			doomed[i] = true
			n++
		}
	}
	if n > 0 && n == nseq {
		return 0, ErrRemoveAll
	}
	for i := len(a.Rows) - 1; i >= 0; i-- {
		if doomed[i] {
			a.RemoveRow(i)
		}
	}
	aln.Order(a.Rows)
	return n, nil
}

// RemoveGappySeqs removes sequences with at least cutoff percent gaps.
func RemoveGappySeqs(a *aln.Alignment, cutoff float64) (int, error) {
	return removeRows(a, func(_ int, r *aln.Row) bool {
		gaps := len(r.Seq) - r.NRes()
		if len(r.Seq) == 0 || float64(gaps)/float64(len(r.Seq)) >= cutoff/100 {
			log.Infof("removing %s, %.1f%% gaps", a.FullName(r), 100*float64(gaps)/float64(len(r.Seq)))
			return true
		}
		return false
	})
}

// RemovePartialSeqs removes sequences which start or end with a gap.
func RemovePartialSeqs(a *aln.Alignment) (int, error) {
	return removeRows(a, func(_ int, r *aln.Row) bool {
		if len(r.Seq) == 0 || bio.IsGap(r.Seq[0]) || bio.IsGap(r.Seq[len(r.Seq)-1]) {
			log.Infof("removing partial sequence %s", a.FullName(r))
			return true
		}
		return false
	})
}

// extent returns the first and the last residue column of a row, or
// -1, -1 for an empty row.
func extent(seq []byte) (first, last int) {
	first, last = -1, -1
	for i, c := range seq {
		if !bio.IsGap(c) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return
}

// overhang counts the residues of each row lying outside the other
// row's extent.
func overhang(s1, s2 []byte) int {
	f1, l1 := extent(s1)
	f2, l2 := extent(s2)
	n := 0
	for i, c := range s1 {
		if !bio.IsGap(c) && (i < f2 || i > l2) {
			n++
		}
	}
	for i, c := range s2 {
		if !bio.IsGap(c) && (i < f1 || i > l1) {
			n++
		}
	}
	return n
}

// MakeNonRedundant removes sequences which are at least cutoff percent
// identical to an earlier sequence covering the same columns.
func MakeNonRedundant(a *aln.Alignment, cutoff float64, penalizeGaps bool) (int, error) {
	rows := cons.SequenceRows(a)
	ident := cons.IdentityMatrix(rows, penalizeGaps)
	redundant := make(map[*aln.Row]bool)
	for i := range rows {
		if redundant[rows[i]] {
			continue
		}
		for j := i + 1; j < len(rows); j++ {
			if redundant[rows[j]] {
				continue
			}
			id := ident.At(i, j)
			if id >= cutoff && overhang(rows[i].Seq, rows[j].Seq) == 0 {
				log.Infof("removing %s, %.1f%% identical to %s",
					a.FullName(rows[j]), id, a.FullName(rows[i]))
				redundant[rows[j]] = true
			}
		}
	}
	return removeRows(a, func(_ int, r *aln.Row) bool {
		return redundant[r]
	})
}

// RemoveOutliers removes sequences whose highest identity to any other
// sequence is below cutoff percent. Every sequence gets its highest
// identity as score.
func RemoveOutliers(a *aln.Alignment, cutoff float64, penalizeGaps bool) (int, error) {
	rows := cons.SequenceRows(a)
	ident := cons.IdentityMatrix(rows, penalizeGaps)
	best := make(map[*aln.Row]float64, len(rows))
	outliers := 0
	for i, r := range rows {
		max := 0.0
		for j := range rows {
			if i != j && ident.At(i, j) > max {
				max = ident.At(i, j)
			}
		}
		best[r] = max
		if max < cutoff {
			outliers++
		}
	}
	if outliers > 0 && outliers == len(rows) {
		return 0, ErrRemoveAll
	}
	for r, max := range best {
		r.Score = max
	}
	a.DisplayScores = true
	return removeRows(a, func(_ int, r *aln.Row) bool {
		if best[r] < cutoff {
			log.Infof("removing %s, at most %.1f%% identical to another sequence", a.FullName(r), best[r])
			return true
		}
		return false
	})
}

// RemoveByScore sorts the rows by score and removes sequences scoring
// below cutoff.
func RemoveByScore(a *aln.Alignment, cutoff float64) (int, error) {
	n, nseq := 0, 0
	for _, r := range a.Rows {
		if !r.IsMarkup() {
			nseq++
			if r.Score < cutoff {
				n++
			}
		}
	}
	if n > 0 && n == nseq {
		return 0, ErrRemoveAll
	}
	if err := order.Sort(a, order.Score); err != nil {
		return 0, err
	}
	return removeRows(a, func(_ int, r *aln.Row) bool {
		if r.Score < cutoff {
			log.Infof("removing %s, score %s", a.FullName(r), aln.FormatScore(r.Score))
			return true
		}
		return false
	})
}
