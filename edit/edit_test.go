package edit

import (
	"errors"
	"testing"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/cons"
)

func init() {
	logging.SetLevel(logging.ERROR, "edit")
	logging.SetLevel(logging.ERROR, "aln")
}

func row(name string, start, end int, seq string) *aln.Row {
	return &aln.Row{Name: name, Start: start, End: end, Seq: []byte(seq)}
}

func alignment(rows ...*aln.Row) *aln.Alignment {
	a := aln.New()
	for _, r := range rows {
		a.Append(r)
	}
	a.Pad()
	return a
}

func seqs(a *aln.Alignment) (s []string) {
	for _, r := range a.Rows {
		s = append(s, string(r.Seq))
	}
	return
}

func checkLengths(tst *testing.T, a *aln.Alignment) {
	for _, r := range a.Rows {
		if len(r.Seq) != a.MaxLen {
			tst.Errorf("%s has %d columns, alignment %d", r.Name, len(r.Seq), a.MaxLen)
		}
	}
}

func TestRemoveColumns(tst *testing.T) {
	a := alignment(
		row("s1", 1, 4, "AC-DE"),
		row("s2", 10, 13, "-CGDE"),
		row("s3", 20, 16, "ACGDE"),
		&aln.Row{Name: "#=GC", Markup: aln.GC, Feature: "SS", Seq: []byte("HHHCC")},
	)
	if err := RemoveColumns(a, 1, 2); err != nil {
		tst.Fatal(err)
	}
	if a.MaxLen != 3 {
		tst.Error("wrong length", a.MaxLen)
	}
	checkLengths(tst, a)
	if a.Rows[0].Start != 3 || a.Rows[1].Start != 11 || a.Rows[2].Start != 18 {
		tst.Error("wrong starts", a.Rows[0].Start, a.Rows[1].Start, a.Rows[2].Start)
	}
	if err := RemoveColumns(a, 3, 3); err != nil {
		tst.Fatal(err)
	}
	checkLengths(tst, a)
	if a.Rows[0].End != 3 || a.Rows[1].End != 12 || a.Rows[2].End != 17 {
		tst.Error("wrong ends", a.Rows[0].End, a.Rows[1].End, a.Rows[2].End)
	}
	if string(a.Rows[3].Seq) != "HC" {
		tst.Error("markup row not cut", string(a.Rows[3].Seq))
	}
	if err := RemoveColumns(a, 1, 2); !errors.Is(err, ErrRemoveAll) {
		tst.Error("removing all columns accepted:", err)
	}
	if err := RemoveColumns(a, 2, 5); err == nil {
		tst.Error("columns out of range accepted")
	}
}

func TestRemoveMiddleColumns(tst *testing.T) {
	a := alignment(row("s1", 1, 6, "ACDEFG"))
	RemoveColumns(a, 2, 4)
	if string(a.Rows[0].Seq) != "AFG" || a.Rows[0].Start != 1 || a.Rows[0].End != 6 {
		tst.Error("wrong result", string(a.Rows[0].Seq), a.Rows[0].Start, a.Rows[0].End)
	}
}

func TestRemoveEmptyColumns(tst *testing.T) {
	a := alignment(
		row("s1", 1, 2, "A-.C-"),
		row("s2", 1, 3, "A-DC-"),
		&aln.Row{Name: "#=GC", Markup: aln.GC, Feature: "SS", Seq: []byte("HHHHH")},
	)
	n, err := RemoveEmptyColumns(a, 1)
	if err != nil || n != 2 {
		tst.Fatal("wrong number of columns removed:", n, err)
	}
	checkLengths(tst, a)
	if s := seqs(a); s[0] != "A.C" || s[1] != "ADC" || s[2] != "HHH" {
		tst.Error("wrong columns removed:", s)
	}
	if a.Rows[0].End != 2 {
		tst.Error("end moved by removing gaps", a.Rows[0].End)
	}
	if n, _ := RemoveEmptyColumns(a, 0.5); n != 1 || a.MaxLen != 2 {
		tst.Error("half empty column not removed", n, a.MaxLen)
	}

	b := alignment(row("s1", 0, 0, "--"), row("s2", 0, 0, ".."))
	if _, err := RemoveEmptyColumns(b, 1); !errors.Is(err, ErrRemoveAll) || b.MaxLen != 2 {
		tst.Error("all columns removed:", err)
	}
}

func TestInsertColumns(tst *testing.T) {
	a := alignment(row("s1", 1, 3, "ACD"), row("s2", 1, 3, "ACE"))
	if err := InsertColumns(a, 1, 2); err != nil {
		tst.Fatal(err)
	}
	if s := seqs(a); s[0] != "A..CD" || s[1] != "A..CE" || a.MaxLen != 5 {
		tst.Error("wrong insertion", s)
	}
	InsertColumns(a, 0, 1)
	InsertColumns(a, a.MaxLen, 1)
	if s := seqs(a); s[0] != ".A..CD." {
		tst.Error("wrong insertion at the ends", s)
	}
	if err := InsertColumns(a, 8, 1); err == nil {
		tst.Error("insertion out of range accepted")
	}
}

func TestRemoveGappySeqs(tst *testing.T) {
	a := alignment(row("s1", 1, 2, "AC--"), row("s2", 1, 3, "ACD-"), row("s3", 1, 1, "---A"))
	a.Select(0)
	n, err := RemoveGappySeqs(a, 50)
	if err != nil || n != 2 {
		tst.Fatal("wrong removal", n, err)
	}
	if a.NRows() != 1 || a.Rows[0].Name != "s2" || a.Rows[0].Nr != 1 {
		tst.Error("wrong rows left")
	}
	if a.Selected() != nil {
		tst.Error("removed row still selected")
	}
	if _, err := RemoveGappySeqs(a, 10); !errors.Is(err, ErrRemoveAll) || a.NRows() != 1 {
		tst.Error("last sequence removed:", err)
	}
}

func TestRemovePartialSeqs(tst *testing.T) {
	a := alignment(row("s1", 1, 3, "-CDE"), row("s2", 1, 3, "ACD."), row("s3", 1, 4, "ACDE"))
	a.Select(2)
	if n, err := RemovePartialSeqs(a); err != nil || n != 2 {
		tst.Fatal("wrong removal", n, err)
	}
	if a.NRows() != 1 || a.Rows[0].Name != "s3" {
		tst.Error("wrong rows left")
	}
	if a.SelectedIndex() != 0 {
		tst.Error("selection not kept", a.SelectedIndex())
	}
}

func TestMakeNonRedundant(tst *testing.T) {
	a := alignment(
		row("r1", 1, 10, "ACDEFGHIKL"),
		row("r2", 1, 10, "ACDEFGHIKM"),
		row("r3", 1, 8, "--DEFGHIKL"),
		row("r4", 1, 10, "ACDEFGHIKL"),
		row("r5", 1, 10, "WWWWWGHIKL"),
	)
	n, err := MakeNonRedundant(a, 90, false)
	if err != nil || n != 2 {
		tst.Fatal("wrong removal", n, err)
	}
	var left []string
	for _, r := range a.Rows {
		left = append(left, r.Name)
	}
	if len(left) != 3 || left[0] != "r1" || left[1] != "r3" || left[2] != "r5" {
		tst.Error("wrong rows left", left)
	}
	rows := cons.SequenceRows(a)
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			if overhang(rows[i].Seq, rows[j].Seq) == 0 &&
				cons.Identity(rows[i].Seq, rows[j].Seq, false) >= 90 {
				tst.Error("redundant pair left:", rows[i].Name, rows[j].Name)
			}
		}
	}
}

func TestOverhang(tst *testing.T) {
	if n := overhang([]byte("--CDE-"), []byte("-ACDEF")); n != 2 {
		tst.Error("wrong overhang", n)
	}
	if n := overhang([]byte("-A-DE-"), []byte("-ACD-F")); n != 1 {
		tst.Error("wrong overhang", n)
	}
}

func TestRemoveOutliers(tst *testing.T) {
	a := alignment(
		row("s1", 1, 10, "ABCDEFGHIJ"),
		row("s2", 1, 10, "ABCDXFGHIJ"),
		row("s3", 1, 10, "ZZZZZZZZZZ"),
	)
	n, err := RemoveOutliers(a, 50, false)
	if err != nil || n != 1 {
		tst.Fatal("wrong removal", n, err)
	}
	if a.NRows() != 2 || a.Rows[0].Name != "s1" || a.Rows[1].Name != "s2" {
		tst.Fatal("wrong rows left")
	}
	for i, r := range a.Rows {
		if r.Nr != i+1 {
			tst.Error("rows not renumbered", r.Nr)
		}
		if r.Score != 90 {
			tst.Error("wrong outlier score", r.Score)
		}
	}
	if !a.DisplayScores {
		tst.Error("scores not shown")
	}
	if _, err := RemoveOutliers(a, 95, false); !errors.Is(err, ErrRemoveAll) || a.NRows() != 2 {
		tst.Error("all sequences removed:", err)
	}
}

func TestRemoveByScore(tst *testing.T) {
	a := alignment(row("s1", 1, 2, "AC"), row("s2", 1, 2, "AC"), row("s3", 1, 2, "AC"))
	a.Rows[0].Score, a.Rows[1].Score, a.Rows[2].Score = 3, 1, 2
	n, err := RemoveByScore(a, 2)
	if err != nil || n != 1 {
		tst.Fatal("wrong removal", n, err)
	}
	if a.Rows[0].Name != "s3" || a.Rows[1].Name != "s1" {
		tst.Error("rows not sorted by score")
	}
	if _, err := RemoveByScore(a, 10); !errors.Is(err, ErrRemoveAll) {
		tst.Error("all sequences removed:", err)
	}
}

func TestInsertMatch(tst *testing.T) {
	a := alignment(row("s1", 1, 12, "ACDEFGHIKLMN"), row("s2", 1, 12, "ACDEFGHIKLMN"))
	a.Select(0)
	match := row("query", 1, 8, "ACDEFGHI")
	n, err := InsertMatch(a, match, []aln.Segment{{QStart: 1, QEnd: 4, AStart: 2, AEnd: 5}, {QStart: 5, QEnd: 8, AStart: 8, AEnd: 11}})
	if err != nil || n != 0 {
		tst.Fatal("wrong insertion", n, err)
	}
	r := a.Rows[1]
	if r.Name != "query" || string(r.Seq) != ".ACDE..FGHI." || a.SelectedIndex() != 1 {
		tst.Error("wrong match row", r.Name, string(r.Seq), a.SelectedIndex())
	}
	if r.Start != 1 || r.End != 8 || r.Nr != 2 || a.Rows[2].Nr != 3 {
		tst.Error("wrong coordinates or numbering", r.Start, r.End, r.Nr)
	}
}

func TestInsertMatchColumns(tst *testing.T) {
	a := alignment(row("s1", 1, 10, "ACDEFGHIKL"))
	match := row("query", 11, 18, "ACDEFGHI")
	n, err := InsertMatch(a, match, []aln.Segment{{QStart: 1, QEnd: 3, AStart: 1, AEnd: 3}, {QStart: 6, QEnd: 8, AStart: 5, AEnd: 7}})
	if err != nil || n != 1 {
		tst.Fatal("wrong insertion", n, err)
	}
	checkLengths(tst, a)
	if s := seqs(a); s[0] != "ACD.EFGHIKL" || s[1] != "ACDefGHI..." {
		tst.Error("wrong rows", s)
	}
	if r := a.Rows[1]; r.Start != 11 || r.End != 18 || a.SelectedIndex() != 1 {
		tst.Error("wrong match row", r.Start, r.End)
	}
}

func TestInsertMatchErrors(tst *testing.T) {
	a := alignment(row("s1", 1, 10, "ACDEFGHIKL"))
	match := row("query", 1, 8, "ACDEFGHI")
	bad := [][]aln.Segment{
		{{QStart: 5, QEnd: 8, AStart: 5, AEnd: 8}, {QStart: 1, QEnd: 4, AStart: 1, AEnd: 4}},
		{{QStart: 1, QEnd: 4, AStart: 1, AEnd: 4}, {QStart: 4, QEnd: 6, AStart: 6, AEnd: 8}},
		{{QStart: 4, QEnd: 1, AStart: 4, AEnd: 1}},
		nil,
	}
	for _, segs := range bad {
		if _, err := InsertMatch(a, match, segs); !errors.Is(err, ErrSegmentOrder) {
			tst.Error("bad segments accepted:", segs, err)
		}
	}
	if _, err := InsertMatch(a, match, []aln.Segment{{QStart: 1, QEnd: 9, AStart: 1, AEnd: 9}}); err == nil {
		tst.Error("segment beyond the query accepted")
	}
	if a.NRows() != 1 || a.MaxLen != 10 {
		tst.Error("alignment changed by a failed insertion")
	}
}
