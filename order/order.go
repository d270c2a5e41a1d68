// Package order sorts the rows of an alignment while keeping markup rows
// next to their sequences and the selected row selected.
package order

import (
	"fmt"
	"strings"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/cons"
	"bitbucket.org/Davydov/belvu/tree"
)

// log is the global logging variable.
var log = logging.MustGetLogger("order")

// Kind is a sort order.
type Kind int

const (
	// Alpha sorts by name, start and end.
	Alpha Kind = iota
	// Organism sorts by organism name, rows without one first.
	Organism
	// Suffix sorts by the part of the name after the last '_'.
	Suffix
	// Score sorts by ascending score.
	Score
	// ScoreDesc sorts by descending score.
	ScoreDesc
	// Nr restores the order recorded in the row numbers.
	Nr
)

var kindNames = []string{"alpha", "organism", "suffix", "score", "score-desc", "nr"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind returns a sort order by its name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return Alpha, fmt.Errorf("unknown sort order: %s", s)
}

// KindNames returns the names of all sort orders.
func KindNames() []string {
	return append([]string(nil), kindNames...)
}

// organismOrder compares organism names of rows, rows without an
// organism first.
func organismOrder(a *aln.Alignment) aln.Compare {
	return func(r1, r2 *aln.Row) int {
		o1, o2 := a.Organism(r1.Org), a.Organism(r2.Org)
		switch {
		case o1 == nil && o2 == nil:
		case o1 == nil:
			return -1
		case o2 == nil:
			return 1
		default:
			if c := strings.Compare(o1.Name, o2.Name); c != 0 {
				return c
			}
		}
		return aln.AlphaOrder(r1, r2)
	}
}

// suffix returns the name part after the last '_', e.g. the species
// code of a UniProt name. Names without '_' have an empty suffix.
func suffix(name string) string {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// SuffixOrder compares the name suffixes of rows.
func SuffixOrder(r1, r2 *aln.Row) int {
	if c := strings.Compare(suffix(r1.Name), suffix(r2.Name)); c != 0 {
		return c
	}
	return aln.AlphaOrder(r1, r2)
}

// ScoreOrder compares row scores.
func ScoreOrder(r1, r2 *aln.Row) int {
	switch {
	case r1.Score < r2.Score:
		return -1
	case r1.Score > r2.Score:
		return 1
	}
	return 0
}

// ScoreDescOrder compares row scores, highest first.
func ScoreDescOrder(r1, r2 *aln.Row) int {
	return ScoreOrder(r2, r1)
}

// comparator returns the row comparator of a sort order.
func comparator(a *aln.Alignment, kind Kind) (aln.Compare, error) {
	switch kind {
	case Alpha:
		return aln.AlphaOrder, nil
	case Organism:
		return organismOrder(a), nil
	case Suffix:
		return SuffixOrder, nil
	case Score:
		return ScoreOrder, nil
	case ScoreDesc:
		return ScoreDescOrder, nil
	case Nr:
		return aln.ByNr, nil
	}
	return nil, fmt.Errorf("unknown sort order %d", kind)
}

// Sort reorders the sequence rows. The rows are put back in their
// numbered order first, so that equal elements keep a reproducible
// order. Markup rows follow their sequences.
func Sort(a *aln.Alignment, kind Kind) error {
	cmp, err := comparator(a, kind)
	if err != nil {
		return err
	}
	log.Debugf("sorting %d rows by %s", a.NRows(), kind)
	return a.KeepSelection(func() error {
		aln.SortRows(a.Rows, aln.ByNr)
		markup := a.SeparateMarkup()
		aln.SortRows(a.Rows, cmp)
		a.ReinsertMarkup(markup)
		return nil
	})
}

// RefMode selects how rows are compared to the reference.
type RefMode int

const (
	// RefIdentity scores rows by percent identity.
	RefIdentity RefMode = iota
	// RefScore scores rows by BLOSUM62 score.
	RefScore
)

// ByReference scores every sequence against the selected row and sorts
// the rows by decreasing score. The scores are kept in the rows and
// the score width of the alignment is updated.
func ByReference(a *aln.Alignment, mode RefMode, penalizeGaps bool) error {
	ref, err := a.SelectedSequence()
	if err != nil {
		return err
	}
	a.KeepSelection(func() error {
		aln.SortRows(a.Rows, aln.ByNr)
		markup := a.SeparateMarkup()
		for _, r := range a.Rows {
			switch mode {
			case RefScore:
				r.Score = cons.Score(ref.Seq, r.Seq, penalizeGaps)
			default:
				r.Score = cons.Identity(ref.Seq, r.Seq, penalizeGaps)
			}
		}
		aln.SortRows(a.Rows, ScoreDescOrder)
		a.ReinsertMarkup(markup)
		return nil
	})
	a.DisplayScores = true
	a.SetWidths()
	log.Debugf("sorted by similarity to %s, score width %d", a.FullName(ref), a.MaxScoreLen)
	return nil
}

// ByTree orders the sequence rows as the leaves of a tree. Leaves are
// matched to rows by the full NAME/START-END or by the bare name. Rows
// missing from the tree keep their order after the tree rows.
func ByTree(a *aln.Alignment, t *tree.Tree) error {
	return a.KeepSelection(func() error {
		byTree(a, t)
		return nil
	})
}

func byTree(a *aln.Alignment, t *tree.Tree) {
	aln.SortRows(a.Rows, aln.ByNr)
	markup := a.SeparateMarkup()

	byName := make(map[string][]*aln.Row)
	for _, r := range a.Rows {
		byName[a.FullName(r)] = append(byName[a.FullName(r)], r)
		byName[r.Name] = append(byName[r.Name], r)
	}
	placed := make(map[*aln.Row]bool, len(a.Rows))
	t.Order(func(leaf *tree.Node, nr int) {
		for _, r := range byName[leaf.Name] {
			if !placed[r] {
				placed[r] = true
				r.Nr = nr
				return
			}
		}
		log.Warningf("tree leaf %s matches no sequence", leaf.Name)
	})
	next := t.NLeaves() + 1
	for _, r := range a.Rows {
		if !placed[r] {
			r.Nr = next
			next++
		}
	}
	aln.SortRows(a.Rows, aln.ByNr)
	a.ReinsertMarkup(markup)
}
