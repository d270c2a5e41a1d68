package cons

import (
	"fmt"
	"strings"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/bio"
)

// Mode selects how residues are coloured.
type Mode int

const (
	// ByResidue paints every residue with its scheme colour.
	ByResidue Mode = iota
	// ByResidueID paints residues with their scheme colour only where
	// they make up more than ResIDCutoff percent of the column.
	ByResidueID
	// BySimilarity tiers residues by the average BLOSUM62 similarity of
	// the column.
	BySimilarity
	// ByIdentity tiers residues by their fraction in the column.
	ByIdentity
	// ByIdentityBlosum is ByIdentity which also paints BLOSUM62
	// neighbours of a tiered residue.
	ByIdentityBlosum
)

var modeNames = []string{"residue", "residue-id", "similarity", "identity", "identity-blosum"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode returns a mode by its name.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return ByResidue, fmt.Errorf("unknown colour mode: %s", s)
}

// ModeNames returns the names of all colour modes.
func ModeNames() []string {
	return append([]string(nil), modeNames...)
}

// Tier is a conservation level. A higher tier is never replaced by a
// lower one.
type Tier int8

const (
	TierNone Tier = iota
	TierLow
	TierMid
	TierMax
)

// Cutoffs are the lower bounds of the low, mid and max tiers. A value
// must exceed the bound.
type Cutoffs struct {
	Low, Mid, Max float64
}

// Tier classifies a value.
func (c Cutoffs) Tier(v float64) Tier {
	switch {
	case v > c.Max:
		return TierMax
	case v > c.Mid:
		return TierMid
	case v > c.Low:
		return TierLow
	}
	return TierNone
}

// Default cutoffs of the similarity and identity modes.
var (
	SimilarityCutoffs = Cutoffs{Low: 0.5, Mid: 1.5, Max: 3.0}
	IdentityCutoffs   = Cutoffs{Low: 0.4, Mid: 0.6, Max: 0.8}
)

// Settings controls the conservation computation.
type Settings struct {
	Mode Mode
	// IgnoreGaps normalizes by the residues of a column instead of the
	// number of sequences.
	IgnoreGaps bool
	// Similarity and Identity are the tier bounds of the two modes.
	Similarity Cutoffs
	Identity   Cutoffs
	// Tier colours.
	LowColor, MidColor, MaxColor bio.Color
	Scheme                       *ColorScheme
	// ResIDCutoff is the percentage used by ByResidueID.
	ResIDCutoff float64
}

// DefaultSettings returns similarity colouring with the usual
// cutoffs and the standard residue scheme.
func DefaultSettings() Settings {
	scheme, _ := NewScheme(SchemeStandard)
	return Settings{
		Mode:        BySimilarity,
		Similarity:  SimilarityCutoffs,
		Identity:    IdentityCutoffs,
		LowColor:    bio.LightGray,
		MidColor:    bio.MidBlue,
		MaxColor:    bio.Cyan,
		Scheme:      scheme,
		ResIDCutoff: 20,
	}
}

func (s *Settings) tierColor(t Tier) bio.Color {
	switch t {
	case TierLow:
		return s.LowColor
	case TierMid:
		return s.MidColor
	case TierMax:
		return s.MaxColor
	}
	return bio.White
}

// Conservation holds the residue counts, colours and conservation
// values of every column.
type Conservation struct {
	// NSeq is the number of rows counted: markup, hidden and NoColor
	// rows are left out.
	NSeq int
	// Count[k][col] is the number of residues with index k in a column.
	Count [bio.NRes + 1][]int
	// Residues is the number of non-gap symbols of each column.
	Residues []int
	// Tiers and Colors are indexed like Count.
	Tiers  [bio.NRes + 1][]Tier
	Colors [bio.NRes + 1][]bio.Color
	// Values is the highest per residue value of each column.
	Values []float64

	settings Settings
}

func counted(r *aln.Row) bool {
	return !r.IsMarkup() && !r.Hide && !r.NoColor
}

// Compute counts residues and colours every column of an alignment.
func Compute(a *aln.Alignment, s Settings) *Conservation {
	if s.Scheme == nil {
		s.Scheme, _ = NewScheme(SchemeEmpty)
	}
	c := &Conservation{settings: s}
	n := a.MaxLen
	c.Residues = make([]int, n)
	c.Values = make([]float64, n)
	for k := range c.Count {
		c.Count[k] = make([]int, n)
		c.Tiers[k] = make([]Tier, n)
		c.Colors[k] = make([]bio.Color, n)
	}
	for _, r := range a.Rows {
		if !counted(r) {
			continue
		}
		c.NSeq++
		for col := 0; col < n && col < len(r.Seq); col++ {
			if bio.IsGap(r.Seq[col]) {
				continue
			}
			c.Residues[col]++
			c.Count[bio.ResIndex(r.Seq[col])][col]++
		}
	}
	for col := 0; col < n; col++ {
		switch s.Mode {
		case ByResidue, ByResidueID:
			c.residueColumn(col)
		case BySimilarity:
			c.similarityColumn(col)
		default:
			c.identityColumn(col)
		}
	}
	log.Debugf("conservation of %d columns over %d sequences (%s)", n, c.NSeq, s.Mode)
	return c
}

func (c *Conservation) norm(col int) int {
	if c.settings.IgnoreGaps {
		return c.Residues[col]
	}
	return c.NSeq
}

func (c *Conservation) residueColumn(col int) {
	n := c.norm(col)
	for k := 1; k <= bio.NRes; k++ {
		if c.Count[k][col] == 0 {
			continue
		}
		id := 0.0
		if n > 0 {
			id = 100 * float64(c.Count[k][col]) / float64(n)
		}
		if id > c.Values[col] {
			c.Values[col] = id
		}
		if c.settings.Mode == ByResidueID && id <= c.settings.ResIDCutoff {
			continue
		}
		c.Colors[k][col] = c.settings.Scheme.Color(bio.Residue(k))
	}
}

func (c *Conservation) similarityColumn(col int) {
	n := c.norm(col)
	for k := 1; k <= bio.NRes; k++ {
		nk := c.Count[k][col]
		if nk == 0 {
			continue
		}
		sum := 0
		for j := 1; j <= bio.NRes; j++ {
			nj := c.Count[j][col]
			if j == k {
				nj = nk - 1
			}
			sum += nk * nj * bio.Blosum62[k-1][j-1]
		}
		id := 0.0
		if n >= 2 {
			id = float64(sum) / float64(n*(n-1))
		}
		c.assign(k, col, id, c.settings.Similarity, true)
	}
}

func (c *Conservation) identityColumn(col int) {
	n := c.norm(col)
	for k := 1; k <= bio.NRes; k++ {
		if c.Count[k][col] == 0 {
			continue
		}
		id := 0.0
		if n > 0 {
			id = float64(c.Count[k][col]) / float64(n)
		}
		c.assign(k, col, id, c.settings.Identity, c.settings.Mode == ByIdentityBlosum)
	}
}

// assign records the value of residue k and gives it (and, with
// neighbours, its BLOSUM62 relatives) the matching tier.
func (c *Conservation) assign(k, col int, v float64, cut Cutoffs, neighbours bool) {
	if v > c.Values[col] {
		c.Values[col] = v
	}
	t := cut.Tier(v)
	if t == TierNone {
		return
	}
	c.raise(k, col, t)
	if !neighbours {
		return
	}
	for j := 1; j <= bio.NRes; j++ {
		if j != k && bio.Similar(k, j) {
			c.raise(j, col, t)
		}
	}
}

func (c *Conservation) raise(k, col int, t Tier) {
	if t > c.Tiers[k][col] {
		c.Tiers[k][col] = t
		c.Colors[k][col] = c.settings.tierColor(t)
	}
}

// Color returns the colour of a cell of the alignment. Gaps, unknown
// symbols and rows left out of the count are white.
func (c *Conservation) Color(r *aln.Row, col int) bio.Color {
	if !counted(r) || col < 0 || col >= len(r.Seq) || col >= len(c.Values) {
		return bio.White
	}
	k := bio.ResIndex(r.Seq[col])
	if k == 0 {
		return bio.White
	}
	return c.Colors[k][col]
}

// Settings returns the settings the conservation was computed with.
func (c *Conservation) Settings() Settings {
	return c.settings
}
