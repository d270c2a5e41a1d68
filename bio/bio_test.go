package bio

import (
	"fmt"
	"testing"
)

func TestBlosumSymmetric(tst *testing.T) {
	for i := range Blosum62 {
		for j := range Blosum62 {
			if Blosum62[i][j] != Blosum62[j][i] {
				tst.Errorf("Blosum62 not symmetric at %d,%d", i, j)
			}
		}
	}
}

func TestBlosumLookup(tst *testing.T) {
	tests := []struct {
		a, b byte
		want int
	}{
		{'A', 'A', 4},
		{'w', 'W', 11},
		{'I', 'V', 3},
		{'D', 'E', 2},
		{'C', 'W', -2},
		{'J', 'J', -1}, // unknown maps to X
		{'*', '*', 1},
	}
	for _, t := range tests {
		if got := Blosum(t.a, t.b); got != t.want {
			tst.Errorf("Blosum(%c, %c) = %d, want %d", t.a, t.b, got, t.want)
		}
	}
}

func TestResIndex(tst *testing.T) {
	for k := 1; k <= NRes; k++ {
		c := Residue(k)
		if ResIndex(c) != k || ResIndex(c+'a'-'A') != k {
			tst.Error("residue index mismatch for", string(c))
		}
		// Residue index k shares the row of Blosum62.
		if BlosumIndex(c) != k-1 {
			tst.Error("blosum index mismatch for", string(c))
		}
	}
	for _, c := range []byte{'-', '.', 'X', 'B', '1'} {
		if ResIndex(c) != 0 {
			tst.Error("non residue has an index:", string(c))
		}
	}
}

func TestParseColor(tst *testing.T) {
	c, ok := ParseColor(" midblue ")
	if !ok || c != MidBlue {
		tst.Error("Error parsing colour name, got", c)
	}
	if _, ok := ParseColor("NOSUCHCOLOUR"); ok {
		tst.Error("Unknown colour accepted")
	}
	for i := White; i < NColors; i++ {
		if c, _ := ParseColor(i.String()); c != i {
			tst.Error("Colour name does not round trip:", i)
		}
	}
}

func ExampleWrap() {
	fmt.Print(Wrap("ABCDEFGHIJ", 4))
	// Output:
	// ABCD
	// EFGH
	// IJ
}
