// Package engine ties the alignment, its configuration and its
// conservation together. Every mutating method leaves the session
// consistent: column widths are recomputed, the conservation is
// recalculated and, after sequences are removed, all-gap columns are
// dropped.
//
// The session does no drawing; a front end reads the accessors again
// after each call.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gonum/matrix/mat64"
	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/alnio"
	"bitbucket.org/Davydov/belvu/bio"
	"bitbucket.org/Davydov/belvu/cons"
	"bitbucket.org/Davydov/belvu/edit"
	"bitbucket.org/Davydov/belvu/order"
	"bitbucket.org/Davydov/belvu/tree"
)

// log is the global logging variable.
var log = logging.MustGetLogger("engine")

// ErrEmptySearch is returned when searching for an empty name.
var ErrEmptySearch = errors.New("empty search string")

// Config holds every tunable of a session.
type Config struct {
	// Sep separates names from coordinates; '=' for GCG files.
	Sep byte
	// OrgTag is the #=GS tag naming organisms.
	OrgTag string

	PenalizeGaps bool
	IgnoreGaps   bool
	Mode         cons.Mode
	Similarity   cons.Cutoffs
	Identity     cons.Cutoffs

	LowColor, MidColor, MaxColor bio.Color
	// Scheme is the name of a built in residue scheme, ignored when
	// SchemeFile is set.
	Scheme     string
	SchemeFile string
	// ResIDCutoff is the percent identity used by residue-id colouring.
	ResIDCutoff float64

	// RemoveEmptyColumns drops all-gap columns after sequences are
	// removed.
	RemoveEmptyColumns bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	s := cons.DefaultSettings()
	return Config{
		Sep:                aln.DefaultSep,
		OrgTag:             "OS",
		Mode:               s.Mode,
		Similarity:         s.Similarity,
		Identity:           s.Identity,
		LowColor:           s.LowColor,
		MidColor:           s.MidColor,
		MaxColor:           s.MaxColor,
		Scheme:             cons.SchemeStandard,
		ResIDCutoff:        s.ResIDCutoff,
		RemoveEmptyColumns: true,
	}
}

// options returns the parser options of the configuration.
func (c Config) options() alnio.Options {
	return alnio.Options{Sep: c.Sep, OrgTag: c.OrgTag}
}

// scheme loads the residue colour scheme.
func (c Config) scheme() (*cons.ColorScheme, error) {
	if c.SchemeFile == "" {
		return cons.NewScheme(c.Scheme)
	}
	f, err := os.Open(c.SchemeFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := cons.ReadColorScheme(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.SchemeFile, err)
	}
	return s, nil
}

// Session is an alignment being worked on.
type Session struct {
	Alignment *aln.Alignment
	// Format is the format the alignment was read in.
	Format       alnio.Format
	Conservation *cons.Conservation

	config Config
	scheme *cons.ColorScheme
}

// New creates a session for an alignment.
func New(a *aln.Alignment, cfg Config) (*Session, error) {
	s := &Session{Alignment: a, Format: alnio.Stockholm}
	if err := s.SetConfig(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Read parses an alignment and creates a session for it.
func Read(r io.Reader, format alnio.Format, cfg Config) (*Session, error) {
	a, format, err := alnio.Read(r, format, cfg.options())
	if err != nil {
		return nil, err
	}
	s, err := New(a, cfg)
	if err != nil {
		return nil, err
	}
	s.Format = format
	return s, nil
}

// Load reads an alignment file, standard input for "-".
func Load(fname string, format alnio.Format, cfg Config) (*Session, error) {
	a, format, err := alnio.ReadFile(fname, format, cfg.options())
	if err != nil {
		return nil, err
	}
	s, err := New(a, cfg)
	if err != nil {
		return nil, err
	}
	s.Format = format
	return s, nil
}

// Save writes the alignment. Auto keeps the format it was read in.
func (s *Session) Save(fname string, format alnio.Format) error {
	if format == alnio.Auto {
		format = s.Format
	}
	return alnio.WriteFile(fname, s.Alignment, format)
}

// Write writes the alignment to w. Auto keeps the format it was read
// in.
func (s *Session) Write(w io.Writer, format alnio.Format) error {
	if format == alnio.Auto {
		format = s.Format
	}
	return alnio.Write(w, s.Alignment, format)
}

// Config returns the configuration of the session.
func (s *Session) Config() Config {
	return s.config
}

// SetConfig changes the configuration and recolours the alignment.
func (s *Session) SetConfig(cfg Config) error {
	scheme, err := cfg.scheme()
	if err != nil {
		return err
	}
	if cfg.Sep != 0 {
		s.Alignment.Sep = cfg.Sep
	}
	s.config = cfg
	s.scheme = scheme
	if n := scheme.ApplyOrganisms(s.Alignment); n > 0 {
		log.Infof("coloured %d organisms from %s", n, cfg.SchemeFile)
	}
	s.refresh()
	return nil
}

// Scheme returns the residue colour scheme in use.
func (s *Session) Scheme() *cons.ColorScheme {
	return s.scheme
}

// settings converts the configuration to conservation settings.
func (s *Session) settings() cons.Settings {
	return cons.Settings{
		Mode:        s.config.Mode,
		IgnoreGaps:  s.config.IgnoreGaps,
		Similarity:  s.config.Similarity,
		Identity:    s.config.Identity,
		LowColor:    s.config.LowColor,
		MidColor:    s.config.MidColor,
		MaxColor:    s.config.MaxColor,
		Scheme:      s.scheme,
		ResIDCutoff: s.config.ResIDCutoff,
	}
}

// refresh recomputes everything derived from the rows.
func (s *Session) refresh() {
	s.Alignment.SetWidths()
	s.Conservation = cons.Compute(s.Alignment, s.settings())
}

// afterRemoval runs once sequences are gone.
func (s *Session) afterRemoval(n int, err error) (int, error) {
	if err != nil || n == 0 {
		return n, err
	}
	if s.config.RemoveEmptyColumns {
		if _, cerr := edit.RemoveEmptyColumns(s.Alignment, 1); cerr != nil {
			log.Warning("Not removing empty columns:", cerr)
		}
	}
	s.refresh()
	return n, nil
}

// Rows returns the rows in display order.
func (s *Session) Rows() []*aln.Row {
	return s.Alignment.Rows
}

// MaxLen returns the number of columns.
func (s *Session) MaxLen() int {
	return s.Alignment.MaxLen
}

// Organisms returns the organisms sorted by name.
func (s *Session) Organisms() []*aln.Organism {
	return s.Alignment.Organisms()
}

// Selected returns the selected row or nil.
func (s *Session) Selected() *aln.Row {
	return s.Alignment.Selected()
}

// Color returns the colour of a cell.
func (s *Session) Color(r *aln.Row, col int) bio.Color {
	return s.Conservation.Color(r, col)
}

// RemoveColumns deletes columns from..to, 1-based and inclusive.
func (s *Session) RemoveColumns(from, to int) error {
	if err := edit.RemoveColumns(s.Alignment, from, to); err != nil {
		return err
	}
	log.Infof("removed columns %d-%d", from, to)
	s.refresh()
	return nil
}

// RemoveEmptyColumns deletes the columns with at least cutoff percent
// gaps.
func (s *Session) RemoveEmptyColumns(cutoff float64) (int, error) {
	n, err := edit.RemoveEmptyColumns(s.Alignment, cutoff/100)
	if err != nil {
		return 0, err
	}
	s.refresh()
	return n, nil
}

// InsertColumns inserts n gap columns after a column.
func (s *Session) InsertColumns(after, n int) error {
	if err := edit.InsertColumns(s.Alignment, after, n); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// RemoveSelected removes the selected sequence.
func (s *Session) RemoveSelected() error {
	r, err := s.Alignment.SelectedSequence()
	if err != nil {
		return err
	}
	if s.Alignment.NSeq() == 1 {
		return edit.ErrRemoveAll
	}
	s.Alignment.RemoveRow(s.Alignment.SelectedIndex())
	aln.Order(s.Alignment.Rows)
	log.Infof("removed %s", s.Alignment.FullName(r))
	_, err = s.afterRemoval(1, nil)
	return err
}

// RemoveGappySeqs removes sequences with at least cutoff percent gaps.
func (s *Session) RemoveGappySeqs(cutoff float64) (int, error) {
	return s.afterRemoval(edit.RemoveGappySeqs(s.Alignment, cutoff))
}

// RemovePartialSeqs removes sequences starting or ending with a gap.
func (s *Session) RemovePartialSeqs() (int, error) {
	return s.afterRemoval(edit.RemovePartialSeqs(s.Alignment))
}

// MakeNonRedundant removes sequences at least cutoff percent identical
// to another one.
func (s *Session) MakeNonRedundant(cutoff float64) (int, error) {
	return s.afterRemoval(edit.MakeNonRedundant(s.Alignment, cutoff, s.config.PenalizeGaps))
}

// RemoveOutliers removes sequences less than cutoff percent identical
// to every other one.
func (s *Session) RemoveOutliers(cutoff float64) (int, error) {
	n, err := edit.RemoveOutliers(s.Alignment, cutoff, s.config.PenalizeGaps)
	if err == nil && n == 0 {
		// the scores changed
		s.refresh()
	}
	return s.afterRemoval(n, err)
}

// RemoveByScore removes sequences scoring below cutoff.
func (s *Session) RemoveByScore(cutoff float64) (int, error) {
	n, err := edit.RemoveByScore(s.Alignment, cutoff)
	if err == nil && n == 0 {
		s.refresh()
	}
	return s.afterRemoval(n, err)
}

// Sort reorders the rows.
func (s *Session) Sort(kind order.Kind) error {
	if err := order.Sort(s.Alignment, kind); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// SortByReference sorts by similarity to the selected sequence.
func (s *Session) SortByReference(mode order.RefMode) error {
	if err := order.ByReference(s.Alignment, mode, s.config.PenalizeGaps); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// SortByTree orders the rows as the leaves of a tree.
func (s *Session) SortByTree(t *tree.Tree) error {
	if err := order.ByTree(s.Alignment, t); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// InsertMatch splices a matched sequence into the alignment and
// selects it.
func (s *Session) InsertMatch(match *aln.Row, segs []aln.Segment) (int, error) {
	n, err := edit.InsertMatch(s.Alignment, match, segs)
	if err != nil {
		return n, err
	}
	s.refresh()
	return n, nil
}

// ReadMatch reads a match file and inserts the sequence.
func (s *Session) ReadMatch(r io.Reader) (int, error) {
	match, segs, err := alnio.ReadMatch(r, s.config.options())
	if err != nil {
		return 0, err
	}
	return s.InsertMatch(match, segs)
}

// IdentityMatrix returns the sequence rows and their pairwise percent
// identities.
func (s *Session) IdentityMatrix() ([]*aln.Row, *mat64.SymDense) {
	rows := cons.SequenceRows(s.Alignment)
	return rows, cons.IdentityMatrix(rows, s.config.PenalizeGaps)
}

// DistanceMatrix returns the sequence rows and their pairwise
// distances, Kimura corrected if asked.
func (s *Session) DistanceMatrix(kimura bool) ([]*aln.Row, *mat64.SymDense) {
	rows, ident := s.IdentityMatrix()
	return rows, cons.DistanceMatrix(ident, kimura)
}
