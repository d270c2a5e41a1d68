package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/gonum/matrix/mat64"

	"bitbucket.org/Davydov/belvu/alnio"
	"bitbucket.org/Davydov/belvu/bio"
	"bitbucket.org/Davydov/belvu/cons"
	"bitbucket.org/Davydov/belvu/consplot"
	"bitbucket.org/Davydov/belvu/engine"
	"bitbucket.org/Davydov/belvu/order"
	"bitbucket.org/Davydov/belvu/termview"
	"bitbucket.org/Davydov/belvu/tree"
)

// getConfig builds the session configuration from the command line.
func getConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	cfg.Sep = (*sep)[0]
	cfg.OrgTag = *orgTag
	cfg.PenalizeGaps = *penalizeGaps
	cfg.IgnoreGaps = *ignoreGaps
	cfg.Scheme = *scheme
	cfg.SchemeFile = *schemeFile
	cfg.ResIDCutoff = *resIDCutoff
	cfg.RemoveEmptyColumns = !*keepEmpty

	mode, err := cons.ParseMode(*colorMode)
	if err != nil {
		return cfg, err
	}
	cfg.Mode = mode

	cut := &cfg.Identity
	if mode == cons.BySimilarity {
		cut = &cfg.Similarity
	}
	if *lowCutoff >= 0 {
		cut.Low = *lowCutoff
	}
	if *midCutoff >= 0 {
		cut.Mid = *midCutoff
	}
	if *maxCutoff >= 0 {
		cut.Max = *maxCutoff
	}
	if cut.Low > cut.Mid || cut.Mid > cut.Max {
		return cfg, fmt.Errorf("cutoffs should increase: low=%v, mid=%v, max=%v", cut.Low, cut.Mid, cut.Max)
	}
	return cfg, nil
}

// load reads an alignment with the command line configuration.
func load(fname string) (*engine.Session, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	format, err := alnio.ParseFormat(*inFormat)
	if err != nil {
		return nil, err
	}
	return engine.Load(fname, format, cfg)
}

// save writes the alignment to the output file.
func save(s *engine.Session) error {
	format, err := alnio.ParseFormat(*outFormat)
	if err != nil {
		return err
	}
	return s.Save(*outF, format)
}

// selectRef selects the sequence matching a name.
func selectRef(s *engine.Session, name string) error {
	r, err := s.SelectName(name)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no sequence matches %s", name)
	}
	log.Infof("Reference sequence: %s", s.Alignment.FullName(r))
	return nil
}

// parseRange parses FROM-TO.
func parseRange(s string) (from, to int, err error) {
	fields := strings.SplitN(s, "-", 2)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("column range should be FROM-TO, got %s", s)
	}
	if from, err = strconv.Atoi(strings.TrimSpace(fields[0])); err != nil {
		return 0, 0, fmt.Errorf("column range %s: %w", s, err)
	}
	if to, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
		return 0, 0, fmt.Errorf("column range %s: %w", s, err)
	}
	return from, to, nil
}

func convert() error {
	s, err := load(*convertIn)
	if err != nil {
		return err
	}
	return save(s)
}

func info() error {
	s, err := load(*infoIn)
	if err != nil {
		return err
	}
	sum := summarize(*infoIn, s)
	sum.Version = version
	sum.CommandLine = os.Args

	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintf(w, "File:              %s (%s)\n", sum.File, sum.Format)
	fmt.Fprintf(w, "Columns:           %d\n", sum.Columns)
	fmt.Fprintf(w, "Sequences:         %d\n", sum.Sequences)
	fmt.Fprintf(w, "Markup rows:       %d\n", sum.Markup)
	fmt.Fprintf(w, "Mean identity:     %.1f%%\n", sum.MeanIdentity)
	fmt.Fprintf(w, "Mean conservation: %.3f (%s)\n", sum.MeanConservation, s.Config().Mode)
	for _, o := range sum.Organisms {
		fmt.Fprintf(w, "Organism:          %s (%d, %s)\n", o.Name, o.Sequences, o.Color)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// output summary in json format
	if *infoJSON != "" {
		j, err := json.Marshal(sum)
		if err != nil {
			return err
		}
		log.Debug(string(j))
		if err := ioutil.WriteFile(*infoJSON, j, 0666); err != nil {
			return fmt.Errorf("Error creating json output file: %w", err)
		}
	}
	return nil
}

func clean() error {
	s, err := load(*cleanIn)
	if err != nil {
		return err
	}
	if *cleanColumns != "" {
		from, to, err := parseRange(*cleanColumns)
		if err != nil {
			return err
		}
		if err := s.RemoveColumns(from, to); err != nil {
			return err
		}
	}
	if *cleanPartial {
		n, err := s.RemovePartialSeqs()
		if err != nil {
			return err
		}
		log.Noticef("Removed %d partial sequences", n)
	}
	if *cleanGappy >= 0 {
		n, err := s.RemoveGappySeqs(*cleanGappy)
		if err != nil {
			return err
		}
		log.Noticef("Removed %d sequences with at least %v%% gaps", n, *cleanGappy)
	}
	if *cleanNR >= 0 {
		n, err := s.MakeNonRedundant(*cleanNR)
		if err != nil {
			return err
		}
		log.Noticef("Removed %d redundant sequences", n)
	}
	if *cleanOutliers >= 0 {
		n, err := s.RemoveOutliers(*cleanOutliers)
		if err != nil {
			return err
		}
		log.Noticef("Removed %d outliers", n)
	}
	if *cleanScore >= 0 {
		if *cleanRef != "" {
			if err := selectRef(s, *cleanRef); err != nil {
				return err
			}
			if err := s.SortByReference(order.RefScore); err != nil {
				return err
			}
		} else if !s.Alignment.DisplayScores {
			return errors.New("sequences have no scores, use --ref or --outliers")
		}
		n, err := s.RemoveByScore(*cleanScore)
		if err != nil {
			return err
		}
		log.Noticef("Removed %d sequences scoring below %v", n, *cleanScore)
	}
	if *cleanEmpty >= 0 {
		n, err := s.RemoveEmptyColumns(*cleanEmpty)
		if err != nil {
			return err
		}
		log.Noticef("Removed %d columns", n)
	}
	return save(s)
}

func sortAlignment() error {
	s, err := load(*sortIn)
	if err != nil {
		return err
	}
	switch {
	case *sortTree != "":
		t, terr := tree.ReadNewickFile(*sortTree)
		if terr != nil {
			return terr
		}
		log.Debugf("tree=%s", t)
		err = s.SortByTree(t)
	case *sortRef != "":
		if serr := selectRef(s, *sortRef); serr != nil {
			return serr
		}
		mode := order.RefIdentity
		if *sortRefMode == "score" {
			mode = order.RefScore
		}
		err = s.SortByReference(mode)
	default:
		kind, perr := order.ParseKind(*sortBy)
		if perr != nil {
			return perr
		}
		err = s.Sort(kind)
	}
	if err != nil {
		return err
	}
	return save(s)
}

func conservation() error {
	s, err := load(*consIn)
	if err != nil {
		return err
	}
	c := s.Conservation
	w := bufio.NewWriter(os.Stdout)
	fmt.Fprintf(w, "# column\tresidue\tcount\tconservation\tcolour\n")
	for col := range c.Values {
		best := 1
		for k := 2; k <= bio.NRes; k++ {
			if c.Count[k][col] > c.Count[best][col] {
				best = k
			}
		}
		res, color := byte('-'), bio.White
		if c.Count[best][col] > 0 {
			res, color = bio.Residue(best), c.Colors[best][col]
		}
		fmt.Fprintf(w, "%d\t%c\t%d\t%.3f\t%s\n", col+1, res, c.Count[best][col], c.Values[col], color)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if *consSchemeOut != "" {
		f, err := os.Create(*consSchemeOut)
		if err != nil {
			return err
		}
		defer f.Close()
		return cons.WriteColorScheme(f, s.Scheme(), s.Alignment)
	}
	return nil
}

func distances() error {
	s, err := load(*distIn)
	if err != nil {
		return err
	}
	var m *mat64.SymDense
	if *distIdentity {
		_, m = s.IdentityMatrix()
	} else {
		_, m = s.DistanceMatrix(*distKimura)
	}
	rows := s.Alignment.Rows
	w := bufio.NewWriter(os.Stdout)
	i := 0
	for _, r := range rows {
		if !r.IsMarkup() {
			i++
			fmt.Fprintf(w, "%d\t%s\n", i, s.Alignment.FullName(r))
		}
	}
	fmt.Fprintf(w, "%.3f\n", mat64.Formatted(m, mat64.Squeeze()))
	return w.Flush()
}

func plotConservation() error {
	s, err := load(*plotIn)
	if err != nil {
		return err
	}
	opts := consplot.DefaultOptions()
	opts.Window = *plotWindow
	opts.Title = fmt.Sprintf("%s conservation", *plotIn)
	if err := consplot.Save(*plotOut, s.Conservation, opts); err != nil {
		return err
	}
	log.Infof("Conservation plot written to %s", *plotOut)
	return nil
}

func show() error {
	s, err := load(*showIn)
	if err != nil {
		return err
	}
	return termview.Write(os.Stdout, s, *showWidth)
}

func match() error {
	s, err := load(*matchIn)
	if err != nil {
		return err
	}
	if *matchRef != "" {
		if err := selectRef(s, *matchRef); err != nil {
			return err
		}
	}
	f, err := os.Open(*matchF)
	if err != nil {
		return err
	}
	defer f.Close()
	n, err := s.ReadMatch(f)
	if err != nil {
		return fmt.Errorf("%s: %w", *matchF, err)
	}
	log.Noticef("Inserted %s, %d new columns", s.Alignment.FullName(s.Selected()), n)
	return save(s)
}
