package consplot

import (
	"bytes"
	"math"
	"testing"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/cons"
)

func TestSmooth(tst *testing.T) {
	v := []float64{0, 3, 6, 3, 0}
	s := Smooth(v, 3)
	want := []float64{1.5, 3, 4, 3, 1.5}
	for i := range want {
		if math.Abs(s[i]-want[i]) > 1e-12 {
			tst.Errorf("Smooth[%d] = %v, want %v", i, s[i], want[i])
		}
	}
	s = Smooth(v, 1)
	for i := range v {
		if s[i] != v[i] {
			tst.Error("window of 1 changed the values")
		}
	}
}

func TestWriteSVG(tst *testing.T) {
	a := aln.New()
	a.Append(&aln.Row{Name: "s1", Start: 1, End: 6, Seq: []byte("ACDEFG")})
	a.Append(&aln.Row{Name: "s2", Start: 1, End: 6, Seq: []byte("ACDEFH")})
	a.Pad()
	c := cons.Compute(a, cons.DefaultSettings())
	var buf bytes.Buffer
	if err := WriteTo(&buf, c, "svg", DefaultOptions()); err != nil {
		tst.Fatal("Error drawing plot:", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("<svg")) {
		tst.Error("no SVG written")
	}
	if _, err := New(cons.Compute(aln.New(), cons.DefaultSettings()), DefaultOptions()); err == nil {
		tst.Error("empty alignment plotted")
	}
}
