package cons

import (
	"math"

	"github.com/gonum/matrix/mat64"

	"bitbucket.org/Davydov/belvu/aln"
)

// MaxKimura is the Kimura distance given to pairs too divergent for
// the correction.
const MaxKimura = 10.0

// SequenceRows returns the rows scored by the pairwise matrices.
func SequenceRows(a *aln.Alignment) (rows []*aln.Row) {
	for _, r := range a.Rows {
		if !r.IsMarkup() {
			rows = append(rows, r)
		}
	}
	return
}

// IdentityMatrix returns the percent identity of every pair of rows.
func IdentityMatrix(rows []*aln.Row, penalizeGaps bool) *mat64.SymDense {
	n := len(rows)
	if n == 0 {
		return &mat64.SymDense{}
	}
	m := mat64.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			m.SetSym(i, j, Identity(rows[i].Seq, rows[j].Seq, penalizeGaps))
		}
	}
	return m
}

// Kimura corrects a fraction of differences p for multiple
// substitutions. Values beyond the range of the correction give
// MaxKimura.
func Kimura(p float64) float64 {
	x := 1 - p - 0.2*p*p
	if x <= 0 {
		return MaxKimura
	}
	d := -math.Log(x)
	if d > MaxKimura {
		return MaxKimura
	}
	return d
}

// DistanceMatrix converts an identity matrix into fractions of
// differences, Kimura corrected if kimura is set.
func DistanceMatrix(ident *mat64.SymDense, kimura bool) *mat64.SymDense {
	n := ident.Symmetric()
	if n == 0 {
		return &mat64.SymDense{}
	}
	m := mat64.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p := 1 - ident.At(i, j)/100
			if kimura {
				p = Kimura(p)
			}
			m.SetSym(i, j, p)
		}
	}
	return m
}
