// Package aln holds a multiple sequence alignment in memory: the rows,
// the organism table they refer to, and the primitives used to order,
// search and renumber them.
package aln

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/bio"
)

// log is the global logging variable.
var log = logging.MustGetLogger("aln")

var (
	// ErrNoSelection is returned by operations which need a selected row.
	ErrNoSelection = errors.New("no sequence selected")
	// ErrMarkupSelected is returned when the selected row is markup.
	ErrMarkupSelected = errors.New("selected row is markup, not a sequence")
)

// Markup tells if a row is a sequence or an annotation row.
type Markup int

const (
	NoMarkup Markup = iota
	// GC rows annotate the whole alignment (#=GC, #=RF).
	GC
	// GR rows annotate a single sequence (#=GR).
	GR
)

// DefaultSep separates the name from the coordinates in NAME/START-END.
const DefaultSep = '/'

// Row is one line of the alignment.
type Row struct {
	Name string
	// Start and End are 1-based inclusive residue numbers; Start > End
	// for reversed numbering.
	Start, End int
	// Seq is the gapped row, MaxLen bytes long.
	Seq []byte
	// Nr is the display position, the only place the order is kept.
	Nr    int
	Score float64
	Color bio.Color
	// Markup rows carry per-column annotation; Feature is the
	// annotation tag (e.g. SS_cons).
	Markup  Markup
	Feature string
	Hide    bool
	// NoColor rows are shown but left out of the conservation.
	NoColor bool
	Org     OrgID
}

// Key identifies a row by value.
type Key struct {
	Name       string
	Start, End int
	Markup     Markup
	Feature    string
}

// Key returns the value identity of a row.
func (r *Row) Key() Key {
	return Key{Name: r.Name, Start: r.Start, End: r.End, Markup: r.Markup, Feature: r.Feature}
}

// IsMarkup tests if the row is an annotation row.
func (r *Row) IsMarkup() bool {
	return r.Markup != NoMarkup
}

// NRes counts the non-gap symbols of the row.
func (r *Row) NRes() (n int) {
	for _, c := range r.Seq {
		if !bio.IsGap(c) {
			n++
		}
	}
	return
}

// Alignment is the ordered collection of rows plus the organism table.
type Alignment struct {
	Rows   []*Row
	MaxLen int
	// Annotations keeps #=GF and #=GS lines for output.
	Annotations []string
	// Sep separates names and coordinates.
	Sep byte
	// DisplayScores is set once rows carry meaningful scores.
	DisplayScores bool

	// Column widths for name, coordinate and score output.
	MaxNameLen     int
	MaxStartLen    int
	MaxEndLen      int
	MaxFullNameLen int
	MaxScoreLen    int

	organisms []*Organism
	orgSorted []OrgID
	// sel is the selected row index plus one, 0 if none.
	sel int
}

// New creates an empty alignment.
func New() *Alignment {
	return &Alignment{Sep: DefaultSep}
}

// NRows returns the number of rows, markup included.
func (a *Alignment) NRows() int {
	return len(a.Rows)
}

// NSeq returns the number of sequence (non-markup) rows.
func (a *Alignment) NSeq() (n int) {
	for _, r := range a.Rows {
		if !r.IsMarkup() {
			n++
		}
	}
	return
}

// Append adds a row at the end.
func (a *Alignment) Append(r *Row) {
	a.Rows = append(a.Rows, r)
	r.Nr = len(a.Rows)
}

// Pad extends every row with gaps up to MaxLen. MaxLen grows to the
// longest row first.
func (a *Alignment) Pad() {
	for _, r := range a.Rows {
		if len(r.Seq) > a.MaxLen {
			a.MaxLen = len(r.Seq)
		}
	}
	for _, r := range a.Rows {
		for len(r.Seq) < a.MaxLen {
			r.Seq = append(r.Seq, '.')
		}
	}
}

// RemoveRow deletes row i. The selection is cleared if it was this row.
func (a *Alignment) RemoveRow(i int) {
	copy(a.Rows[i:], a.Rows[i+1:])
	a.Rows[len(a.Rows)-1] = nil
	a.Rows = a.Rows[:len(a.Rows)-1]
	switch {
	case i+1 == a.sel:
		a.sel = 0
	case i+1 < a.sel:
		a.sel--
	}
}

// InsertRow puts r at index i, shifting the following rows down.
func (a *Alignment) InsertRow(i int, r *Row) {
	a.Rows = append(a.Rows, nil)
	copy(a.Rows[i+1:], a.Rows[i:])
	a.Rows[i] = r
	if a.sel > i {
		a.sel++
	}
}

// FullName formats the row name as written to alignment files:
// NAME/START-END for sequences, the tag for markup.
func (a *Alignment) FullName(r *Row) string {
	sep := a.Sep
	if sep == 0 {
		sep = DefaultSep
	}
	switch r.Markup {
	case GC:
		if r.Feature == "" {
			return r.Name
		}
		return r.Name + " " + r.Feature
	case GR:
		name := r.Name
		if r.Start != 0 || r.End != 0 {
			name = fmt.Sprintf("%s%c%d-%d", r.Name, sep, r.Start, r.End)
		}
		return "#=GR " + name + " " + r.Feature
	}
	return fmt.Sprintf("%s%c%d-%d", r.Name, sep, r.Start, r.End)
}

// SetWidths recomputes the column widths used when writing rows.
func (a *Alignment) SetWidths() {
	a.MaxNameLen, a.MaxStartLen, a.MaxEndLen = 0, 0, 0
	a.MaxFullNameLen, a.MaxScoreLen = 0, 0
	for _, r := range a.Rows {
		a.MaxNameLen = maxInt(a.MaxNameLen, len(r.Name))
		a.MaxFullNameLen = maxInt(a.MaxFullNameLen, len(a.FullName(r)))
		if r.IsMarkup() {
			continue
		}
		a.MaxStartLen = maxInt(a.MaxStartLen, len(strconv.Itoa(r.Start)))
		a.MaxEndLen = maxInt(a.MaxEndLen, len(strconv.Itoa(r.End)))
		a.MaxScoreLen = maxInt(a.MaxScoreLen, len(FormatScore(r.Score)))
	}
}

// FormatScore formats a row score for display.
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', 1, 64)
}

// maxInt returns maximum integer value.
func maxInt(a int, b ...int) int {
	for _, v := range b {
		if v > a {
			a = v
		}
	}
	return a
}

// Segment maps residues QStart..QEnd of a matched sequence onto the
// alignment columns AStart..AEnd. Both ranges are 1-based and
// inclusive.
type Segment struct {
	QStart, QEnd int
	AStart, AEnd int
}
