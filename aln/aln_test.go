package aln

import (
	"testing"

	"github.com/op/go-logging"
)

func init() {
	logging.SetLevel(logging.ERROR, "aln")
}

func row(name string, start, end int, seq string) *Row {
	return &Row{Name: name, Start: start, End: end, Seq: []byte(seq)}
}

func TestArrayFind(tst *testing.T) {
	rows := []*Row{row("A", 1, 5, ""), row("B", 1, 5, ""), row("C", 1, 5, "")}
	tests := []struct {
		probe *Row
		index int
		found bool
	}{
		{row("A", 1, 5, ""), 0, true},
		{row("B", 1, 5, ""), 1, true},
		{row("C", 1, 5, ""), 2, true},
		{row("AA", 1, 5, ""), 0, false},
		{row("0", 1, 5, ""), -1, false},
		{row("D", 1, 5, ""), 2, false},
		{row("B", 1, 4, ""), 0, false},
		{row("B", 2, 5, ""), 1, false},
	}
	for _, t := range tests {
		i, ok := ArrayFind(rows, t.probe, AlphaOrder)
		if i != t.index || ok != t.found {
			tst.Errorf("ArrayFind(%s/%d-%d) = %d, %v; want %d, %v",
				t.probe.Name, t.probe.Start, t.probe.End, i, ok, t.index, t.found)
		}
	}
	if i, ok := ArrayFind(nil, rows[0], AlphaOrder); i != -1 || ok {
		tst.Error("ArrayFind on empty rows:", i, ok)
	}
}

func TestArrayFindLarge(tst *testing.T) {
	names := "abcdefghijklmnopqrstuvwxyz"
	var rows []*Row
	for i := range names {
		rows = append(rows, row(names[i:i+1], 1, 10, ""))
	}
	for i, r := range rows {
		j, ok := ArrayFind(rows, row(r.Name, 1, 10, ""), AlphaOrder)
		if !ok || j != i {
			tst.Errorf("element %d found at %d (%v)", i, j, ok)
		}
		j, ok = ArrayFind(rows, row(r.Name+"z", 1, 10, ""), AlphaOrder)
		if ok || j != i {
			tst.Errorf("absent key after %d gave %d (%v)", i, j, ok)
		}
	}
}

func TestAlignFind(tst *testing.T) {
	rows := []*Row{row("C", 1, 5, ""), row("A", 1, 5, ""), row("A", 6, 9, "")}
	if i := AlignFind(rows, Key{Name: "A", Start: 6, End: 9}); i != 2 {
		tst.Error("AlignFind returned", i)
	}
	if i := AlignFind(rows, Key{Name: "A", Start: 6, End: 10}); i != -1 {
		tst.Error("AlignFind found a missing row at", i)
	}
}

func TestOrder(tst *testing.T) {
	rows := []*Row{row("C", 1, 5, ""), row("A", 1, 5, ""), row("B", 1, 5, "")}
	Order10(rows)
	if rows[2].Nr != 30 {
		tst.Error("Order10 gave", rows[2].Nr)
	}
	SortRows(rows, AlphaOrder)
	Order(rows)
	for i, r := range rows {
		if r.Nr != i+1 {
			tst.Error("wrong nr after Order:", r.Name, r.Nr)
		}
	}
	if rows[0].Name != "A" || rows[2].Name != "C" {
		tst.Error("rows not sorted")
	}
}

func TestMarkupRoundTrip(tst *testing.T) {
	a := New()
	a.Append(row("seq2", 1, 4, "ABCD"))
	a.Append(&Row{Name: "seq2", Start: 1, End: 4, Markup: GR, Feature: "SS", Seq: []byte("HHHH")})
	a.Append(row("seq1", 1, 4, "ABCE"))
	a.Append(&Row{Name: "#=GC", Markup: GC, Feature: "SS_cons", Seq: []byte("HHH.")})
	a.Append(&Row{Name: "orphan", Markup: GR, Feature: "SS", Seq: []byte("....")})
	a.Select(2)

	a.KeepSelection(func() error {
		markup := a.SeparateMarkup()
		if len(markup) != 3 || a.NRows() != 2 {
			tst.Fatal("wrong split:", len(markup), a.NRows())
		}
		if a.Selected() == nil || a.Selected().Name != "seq1" {
			tst.Error("selection lost when separating markup")
		}
		SortRows(a.Rows, AlphaOrder)
		a.ReinsertMarkup(markup)
		return nil
	})

	want := []string{"seq1", "seq2", "seq2 SS", "#=GC SS_cons", "orphan SS"}
	if a.NRows() != len(want) {
		tst.Fatal("wrong number of rows after reinsertion:", a.NRows())
	}
	for i, r := range a.Rows {
		got := r.Name
		if r.Feature != "" {
			got += " " + r.Feature
		}
		if got != want[i] {
			tst.Errorf("row %d is %q, want %q", i, got, want[i])
		}
		if r.Nr != i+1 {
			tst.Errorf("row %d has nr %d", i, r.Nr)
		}
	}
	if a.SelectedIndex() != 0 {
		tst.Error("selection not restored, index", a.SelectedIndex())
	}
}

func TestOrganisms(tst *testing.T) {
	a := New()
	hs := a.AddOrganism("Homo sapiens")
	mm := a.AddOrganism("Mus musculus")
	at := a.AddOrganism("Arabidopsis thaliana")
	if a.AddOrganism("Homo sapiens") != hs {
		tst.Error("organism created twice")
	}
	if a.Organism(hs) != a.Organism(hs) || a.Organism(hs).Name != "Homo sapiens" {
		tst.Error("wrong organism entry")
	}
	orgs := a.Organisms()
	if len(orgs) != 3 || orgs[0] != a.Organism(at) || orgs[2] != a.Organism(mm) {
		tst.Error("organisms not sorted by name")
	}
	if id, ok := a.FindOrganism("Mus musculus"); !ok || id != mm {
		tst.Error("FindOrganism failed")
	}
	if _, ok := a.FindOrganism("Danio rerio"); ok {
		tst.Error("FindOrganism found a missing organism")
	}
	if a.Organism(NoOrg) != nil {
		tst.Error("NoOrg has an entry")
	}
}

func TestRemoveRowSelection(tst *testing.T) {
	a := New()
	for _, n := range []string{"a", "b", "c"} {
		a.Append(row(n, 1, 3, "AAA"))
	}
	a.Select(2)
	a.RemoveRow(0)
	if r := a.Selected(); r == nil || r.Name != "c" {
		tst.Error("selection moved after removing an earlier row")
	}
	a.RemoveRow(1)
	if a.Selected() != nil {
		tst.Error("selection kept after removing the selected row")
	}
}

func TestKeepSelection(tst *testing.T) {
	a := New()
	for _, n := range []string{"c", "a", "b"} {
		a.Append(row(n, 1, 3, "AAA"))
	}
	a.Select(0)
	a.KeepSelection(func() error {
		SortRows(a.Rows, AlphaOrder)
		return nil
	})
	if a.SelectedIndex() != 2 || a.Selected().Name != "c" {
		tst.Error("selection not found after sort:", a.SelectedIndex())
	}
}

func TestFullNameWidths(tst *testing.T) {
	a := New()
	a.Append(row("seq1", 1, 100, ""))
	a.Append(row("s2", -5, 9, ""))
	a.Append(&Row{Name: "#=GC", Markup: GC, Feature: "SS_cons"})
	if n := a.FullName(a.Rows[0]); n != "seq1/1-100" {
		tst.Error("wrong full name", n)
	}
	a.Sep = '='
	if n := a.FullName(a.Rows[1]); n != "s2=-5-9" {
		tst.Error("wrong full name", n)
	}
	a.SetWidths()
	if a.MaxFullNameLen != len("#=GC SS_cons") || a.MaxStartLen != 2 || a.MaxEndLen != 3 {
		tst.Error("wrong widths", a.MaxFullNameLen, a.MaxStartLen, a.MaxEndLen)
	}
}
