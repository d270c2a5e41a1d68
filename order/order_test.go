package order

import (
	"bytes"
	"errors"
	"testing"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/tree"
)

func init() {
	logging.SetLevel(logging.ERROR, "order")
	logging.SetLevel(logging.ERROR, "aln")
}

// testAlignment has a #=GR row after b_MOUSE and a #=GC row at the end.
func testAlignment() *aln.Alignment {
	a := aln.New()
	a.Append(&aln.Row{Name: "c_HUMAN", Start: 1, End: 6, Seq: []byte("ACDEFG"), Score: 2})
	a.Append(&aln.Row{Name: "b_MOUSE", Start: 1, End: 6, Seq: []byte("ACDEFH"), Score: 3})
	a.Append(&aln.Row{Name: "b_MOUSE", Start: 1, End: 6, Markup: aln.GR, Feature: "SS", Seq: []byte("HHHHCC")})
	a.Append(&aln.Row{Name: "a_RAT", Start: 1, End: 6, Seq: []byte("WWWEFG"), Score: 1})
	a.Append(&aln.Row{Name: "#=GC", Markup: aln.GC, Feature: "SS_cons", Seq: []byte("HHHHCC")})
	a.MaxLen = 6
	return a
}

func names(a *aln.Alignment) (s []string) {
	for _, r := range a.Rows {
		n := r.Name
		if r.IsMarkup() {
			n += " " + r.Feature
		}
		s = append(s, n)
	}
	return
}

func checkOrder(tst *testing.T, a *aln.Alignment, want ...string) {
	got := names(a)
	if len(got) != len(want) {
		tst.Fatal("wrong rows:", got)
	}
	for i := range want {
		if got[i] != want[i] {
			tst.Errorf("wrong order %v, want %v", got, want)
			return
		}
	}
	for i, r := range a.Rows {
		if r.Nr != i+1 {
			tst.Error("rows not renumbered:", r.Name, r.Nr)
		}
	}
}

func TestSortAlpha(tst *testing.T) {
	a := testAlignment()
	a.Select(0)
	if err := Sort(a, Alpha); err != nil {
		tst.Fatal(err)
	}
	checkOrder(tst, a, "a_RAT", "b_MOUSE", "b_MOUSE SS", "c_HUMAN", "#=GC SS_cons")
	if a.Selected() == nil || a.Selected().Name != "c_HUMAN" {
		tst.Error("selection lost:", a.SelectedIndex())
	}
}

func TestSortSuffixAndScore(tst *testing.T) {
	a := testAlignment()
	Sort(a, Suffix)
	checkOrder(tst, a, "c_HUMAN", "b_MOUSE", "b_MOUSE SS", "a_RAT", "#=GC SS_cons")
	Sort(a, Score)
	checkOrder(tst, a, "a_RAT", "c_HUMAN", "b_MOUSE", "b_MOUSE SS", "#=GC SS_cons")
	Sort(a, ScoreDesc)
	checkOrder(tst, a, "b_MOUSE", "b_MOUSE SS", "c_HUMAN", "a_RAT", "#=GC SS_cons")
}

func TestSortOrganism(tst *testing.T) {
	a := testAlignment()
	a.Rows[0].Org = a.AddOrganism("Homo sapiens")
	a.Rows[1].Org = a.AddOrganism("Mus musculus")
	Sort(a, Organism)
	// a_RAT has no organism and comes first
	checkOrder(tst, a, "a_RAT", "c_HUMAN", "b_MOUSE", "b_MOUSE SS", "#=GC SS_cons")
}

func TestSortNr(tst *testing.T) {
	a := testAlignment()
	for i, nr := range []int{3, 1, 2, 4, 5} {
		a.Rows[i].Nr = nr
	}
	Sort(a, Nr)
	checkOrder(tst, a, "b_MOUSE", "b_MOUSE SS", "c_HUMAN", "a_RAT", "#=GC SS_cons")
	Sort(a, Score)
	Sort(a, Score)
	checkOrder(tst, a, "a_RAT", "c_HUMAN", "b_MOUSE", "b_MOUSE SS", "#=GC SS_cons")
}

func TestByReference(tst *testing.T) {
	a := testAlignment()
	if err := ByReference(a, RefIdentity, false); !errors.Is(err, aln.ErrNoSelection) {
		tst.Error("no selection accepted:", err)
	}
	a.Select(2)
	if err := ByReference(a, RefIdentity, false); !errors.Is(err, aln.ErrMarkupSelected) {
		tst.Error("markup reference accepted:", err)
	}
	a.Select(3)
	if err := ByReference(a, RefIdentity, false); err != nil {
		tst.Fatal(err)
	}
	checkOrder(tst, a, "a_RAT", "c_HUMAN", "b_MOUSE", "b_MOUSE SS", "#=GC SS_cons")
	if a.SelectedIndex() != 0 {
		tst.Error("reference not reselected:", a.SelectedIndex())
	}
	if a.Rows[0].Score != 100 || a.Rows[1].Score != 50 || !a.DisplayScores {
		tst.Error("wrong scores", a.Rows[0].Score, a.Rows[1].Score)
	}
	if a.MaxScoreLen != len("100.0") {
		tst.Error("wrong score width", a.MaxScoreLen)
	}

	if err := ByReference(a, RefScore, false); err != nil {
		tst.Fatal(err)
	}
	if a.Rows[0].Name != "a_RAT" || a.Rows[0].Score != 11*3+5+6+6 {
		tst.Error("wrong BLOSUM score", a.Rows[0].Name, a.Rows[0].Score)
	}
}

func TestByTree(tst *testing.T) {
	a := testAlignment()
	a.Select(3)
	t, err := tree.ParseNewick(bytes.NewBufferString("((b_MOUSE/1-6:1,a_RAT:1):1,ghost:1);"))
	if err != nil {
		tst.Fatal(err)
	}
	if err := ByTree(a, t); err != nil {
		tst.Fatal(err)
	}
	checkOrder(tst, a, "b_MOUSE", "b_MOUSE SS", "a_RAT", "c_HUMAN", "#=GC SS_cons")
	if a.Selected().Name != "a_RAT" {
		tst.Error("selection lost:", a.Selected().Name)
	}
}

func TestParseKind(tst *testing.T) {
	for _, name := range KindNames() {
		if k, err := ParseKind(name); err != nil || k.String() != name {
			tst.Error("kind does not parse back:", name)
		}
	}
}
