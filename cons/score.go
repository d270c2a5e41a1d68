// Package cons scores sequence pairs and computes the per-column
// conservation and colouring of an alignment.
package cons

import (
	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/bio"
)

// log is the global logging variable.
var log = logging.MustGetLogger("cons")

// gapPenalty is the score of a residue aligned to a gap when gaps are
// penalized.
const gapPenalty = -0.6

// Identity returns the percent identity of two aligned sequences.
// Columns where both have a gap are skipped. A residue against a gap
// counts as a mismatch if penalizeGaps is set and is skipped otherwise.
// Letter case is ignored.
func Identity(s1, s2 []byte, penalizeGaps bool) float64 {
	n := len(s1)
	if len(s2) < n {
		n = len(s2)
	}
	var ident, compared int
	for i := 0; i < n; i++ {
		g1, g2 := bio.IsGap(s1[i]), bio.IsGap(s2[i])
		switch {
		case g1 && g2:
			continue
		case g1 || g2:
			if penalizeGaps {
				compared++
			}
			continue
		}
		compared++
		if bio.Upper(s1[i]) == bio.Upper(s2[i]) {
			ident++
		}
	}
	if compared == 0 {
		return 0
	}
	return 100 * float64(ident) / float64(compared)
}

// Score returns the BLOSUM62 score of two aligned sequences, with the
// same gap handling as Identity. A residue against a gap scores -0.6
// when gaps are penalized.
func Score(s1, s2 []byte, penalizeGaps bool) float64 {
	n := len(s1)
	if len(s2) < n {
		n = len(s2)
	}
	score := 0.0
	for i := 0; i < n; i++ {
		g1, g2 := bio.IsGap(s1[i]), bio.IsGap(s2[i])
		switch {
		case g1 && g2:
		case g1 || g2:
			if penalizeGaps {
				score += gapPenalty
			}
		default:
			score += float64(bio.Blosum(s1[i], s2[i]))
		}
	}
	return score
}
