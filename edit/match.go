package edit

import (
	"bytes"
	"fmt"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/bio"
)

// checkSegments verifies that segments are ungapped, inside the query
// and the alignment, and strictly increasing.
func checkSegments(segs []aln.Segment, nres, maxLen int) error {
	if len(segs) == 0 {
		return fmt.Errorf("%w: no segments", ErrSegmentOrder)
	}
	for i, s := range segs {
		if s.QStart < 1 || s.QEnd > nres || s.AStart < 1 || s.AEnd > maxLen {
			return fmt.Errorf("segment %d (%d-%d to %d-%d) outside the sequence or the alignment",
				i+1, s.QStart, s.QEnd, s.AStart, s.AEnd)
		}
		if s.QStart > s.QEnd || s.AStart > s.AEnd {
			return fmt.Errorf("%w: segment %d is reversed", ErrSegmentOrder, i+1)
		}
		if s.QEnd-s.QStart != s.AEnd-s.AStart {
			return fmt.Errorf("segment %d: query and alignment lengths differ", i+1)
		}
		if i > 0 && (s.QStart <= segs[i-1].QEnd || s.AStart <= segs[i-1].AEnd) {
			return fmt.Errorf("%w: segment %d starts before segment %d ends", ErrSegmentOrder, i+1, i)
		}
	}
	return nil
}

// InsertMatch adds a matched sequence to the alignment. Each segment
// places a stretch of its residues on alignment columns. Residues
// between two segments go, in lower case, into the columns between
// them; gap columns are inserted where they do not fit. The new row
// goes after the selected row, or at the end, and becomes selected.
// The number of inserted columns is returned.
func InsertMatch(a *aln.Alignment, match *aln.Row, segs []aln.Segment) (int, error) {
	var res []byte
	for _, c := range match.Seq {
		if !bio.IsGap(c) {
			res = append(res, c)
		}
	}
	if err := checkSegments(segs, len(res), a.MaxLen); err != nil {
		return 0, err
	}
	segs = append([]aln.Segment(nil), segs...)

	inserted := 0
	for i := 1; i < len(segs); i++ {
		qgap := segs[i].QStart - segs[i-1].QEnd - 1
		agap := segs[i].AStart - segs[i-1].AEnd - 1
		if qgap <= agap {
			continue
		}
		d := qgap - agap
		if err := InsertColumns(a, segs[i-1].AEnd, d); err != nil {
			return inserted, err
		}
		for j := i; j < len(segs); j++ {
			segs[j].AStart += d
			segs[j].AEnd += d
		}
		inserted += d
	}

	seq := bytes.Repeat([]byte{'.'}, a.MaxLen)
	for i, s := range segs {
		copy(seq[s.AStart-1:s.AEnd], res[s.QStart-1:s.QEnd])
		if i+1 < len(segs) {
			copy(seq[s.AEnd:], bytes.ToLower(res[s.QEnd:segs[i+1].QStart-1]))
		}
	}

	start, end := match.Start, match.End
	if start == 0 && end == 0 {
		start, end = 1, len(res)
	}
	step := 1
	if start > end {
		step = -1
	}
	last := segs[len(segs)-1]
	row := &aln.Row{
		Name:  match.Name,
		Start: start + step*(segs[0].QStart-1),
		End:   start + step*(last.QEnd-1),
		Seq:   seq,
		Color: match.Color,
	}

	at := len(a.Rows)
	if i := a.SelectedIndex(); i >= 0 {
		at = i + 1
	}
	a.InsertRow(at, row)
	aln.Order(a.Rows)
	a.Select(at)
	log.Infof("inserted %s with %d segments, %d new columns", a.FullName(row), len(segs), inserted)
	return inserted, nil
}
