// Package bio provides static amino acid tables: the BLOSUM62
// substitution matrix, residue indices and gap symbols.
package bio

const (
	// NRes is the number of standard amino acids.
	NRes = 20
	// residues lists the standard amino acids in the order of their
	// residue index (1..20) and of the first 20 BLOSUM62 rows.
	residues = "ARNDCQEGHILKMFPSTWYV"
	// blosumOrder is the row and column order of Blosum62.
	blosumOrder = "ARNDCQEGHILKMFPSTWYVBZX*"
)

// Blosum62 is the BLOSUM62 substitution matrix, rows and columns in
// the order ARNDCQEGHILKMFPSTWYVBZX*.
var Blosum62 = [24][24]int{
	{4, -1, -2, -2, 0, -1, -1, 0, -2, -1, -1, -1, -1, -2, -1, 1, 0, -3, -2, 0, -2, -1, 0, -4},
	{-1, 5, 0, -2, -3, 1, 0, -2, 0, -3, -2, 2, -1, -3, -2, -1, -1, -3, -2, -3, -1, 0, -1, -4},
	{-2, 0, 6, 1, -3, 0, 0, 0, 1, -3, -3, 0, -2, -3, -2, 1, 0, -4, -2, -3, 3, 0, -1, -4},
	{-2, -2, 1, 6, -3, 0, 2, -1, -1, -3, -4, -1, -3, -3, -1, 0, -1, -4, -3, -3, 4, 1, -1, -4},
	{0, -3, -3, -3, 9, -3, -4, -3, -3, -1, -1, -3, -1, -2, -3, -1, -1, -2, -2, -1, -3, -3, -2, -4},
	{-1, 1, 0, 0, -3, 5, 2, -2, 0, -3, -2, 1, 0, -3, -1, 0, -1, -2, -1, -2, 0, 3, -1, -4},
	{-1, 0, 0, 2, -4, 2, 5, -2, 0, -3, -3, 1, -2, -3, -1, 0, -1, -3, -2, -2, 1, 4, -1, -4},
	{0, -2, 0, -1, -3, -2, -2, 6, -2, -4, -4, -2, -3, -3, -2, 0, -2, -2, -3, -3, -1, -2, -1, -4},
	{-2, 0, 1, -1, -3, 0, 0, -2, 8, -3, -3, -1, -2, -1, -2, -1, -2, -2, 2, -3, 0, 0, -1, -4},
	{-1, -3, -3, -3, -1, -3, -3, -4, -3, 4, 2, -3, 1, 0, -3, -2, -1, -3, -1, 3, -3, -3, -1, -4},
	{-1, -2, -3, -4, -1, -2, -3, -4, -3, 2, 4, -2, 2, 0, -3, -2, -1, -2, -1, 1, -4, -3, -1, -4},
	{-1, 2, 0, -1, -3, 1, 1, -2, -1, -3, -2, 5, -1, -3, -1, 0, -1, -3, -2, -2, 0, 1, -1, -4},
	{-1, -1, -2, -3, -1, 0, -2, -3, -2, 1, 2, -1, 5, 0, -2, -1, -1, -1, -1, 1, -3, -1, -1, -4},
	{-2, -3, -3, -3, -2, -3, -3, -3, -1, 0, 0, -3, 0, 6, -4, -2, -2, 1, 3, -1, -3, -3, -1, -4},
	{-1, -2, -2, -1, -3, -1, -1, -2, -2, -3, -3, -1, -2, -4, 7, -1, -1, -4, -3, -2, -2, -1, -2, -4},
	{1, -1, 1, 0, -1, 0, 0, 0, -1, -2, -2, 0, -1, -2, -1, 4, 1, -3, -2, -2, 0, 0, 0, -4},
	{0, -1, 0, -1, -1, -1, -1, -2, -2, -1, -1, -1, -1, -2, -1, 1, 5, -2, -2, 0, -1, -1, 0, -4},
	{-3, -3, -4, -4, -2, -2, -3, -2, -2, -3, -2, -3, -1, 1, -4, -3, -2, 11, 2, -3, -4, -3, -2, -4},
	{-2, -2, -2, -3, -2, -1, -2, -3, 2, -1, -1, -2, -1, 3, -3, -2, -2, 2, 7, -1, -3, -2, -1, -4},
	{0, -3, -3, -3, -1, -2, -2, -3, -3, 3, 1, -2, 1, -1, -2, -2, 0, -3, -1, 4, -3, -2, -1, -4},
	{-2, -1, 3, 4, -3, 0, 1, -1, 0, -3, -4, 0, -3, -3, -2, 0, -1, -4, -3, -3, 4, 1, -1, -4},
	{-1, 0, 0, 1, -3, 3, 4, -2, 0, -3, -3, 1, -1, -3, -1, 0, -1, -3, -2, -2, 1, 4, -1, -4},
	{0, -1, -1, -1, -2, -1, -1, -1, -1, -1, -1, -1, -1, -1, -2, 0, 0, -2, -1, -1, -1, -1, -1, -4},
	{-4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, 1},
}

var (
	// resIndex maps a byte to its residue index, 0 for non-residues.
	resIndex [256]int
	// blosumIndex maps a byte to its Blosum62 row.
	blosumIndex [256]int
)

func init() {
	xIndex := len(blosumOrder) - 2
	for i := range blosumIndex {
		blosumIndex[i] = xIndex
	}
	for i := 0; i < len(blosumOrder); i++ {
		c := blosumOrder[i]
		blosumIndex[c] = i
		blosumIndex[lower(c)] = i
	}
	for i := 0; i < len(residues); i++ {
		c := residues[i]
		resIndex[c] = i + 1
		resIndex[lower(c)] = i + 1
	}
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// Upper returns the upper case version of an ASCII letter.
func Upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// IsGap tests if a symbol is a gap. Both '-' and '.' are used in
// alignments, '~' comes from GCG files and blank from badly padded
// Stockholm files.
func IsGap(c byte) bool {
	switch c {
	case '-', '.', '~', ' ':
		return true
	}
	return false
}

// ResIndex returns the residue index (1..20) of an amino acid, 0 for
// anything else.
func ResIndex(c byte) int {
	return resIndex[c]
}

// Residue returns the upper case amino acid with residue index k.
func Residue(k int) byte {
	return residues[k-1]
}

// BlosumIndex returns the Blosum62 row of a symbol. Unknown symbols
// map to X.
func BlosumIndex(c byte) int {
	return blosumIndex[c]
}

// Blosum returns the BLOSUM62 score of two symbols.
func Blosum(a, b byte) int {
	return Blosum62[blosumIndex[a]][blosumIndex[b]]
}

// Similar tests if two residue indices score positively in BLOSUM62.
func Similar(k, j int) bool {
	return Blosum62[k-1][j-1] > 0
}

// Wrap inputs a string and wraps it so string length is n characters
// or less.
func Wrap(seq string, n int) (s string) {
	for i := 0; i < len(seq); i += n {
		end := i + n
		if end > len(seq) {
			end = len(seq)
		}
		s += seq[i:end] + "\n"
	}
	return
}
