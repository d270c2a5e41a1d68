package alnio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/bio"
)

// MatchFooter ends the alignment part of a match file.
const MatchFooter = "# matchFooter"

// mulLine is a data line of a Stockholm file.
type mulLine struct {
	key     string // identifies the row the data belongs to
	token   string // NAME/START-END
	feature string
	markup  aln.Markup
	nameEnd int // first byte after the name (and feature)
	start   int // first byte of the sequence data
	text    string
}

// fieldEnd returns the end of the n-th (0-based) whitespace separated
// field of s, and the start of the field after it.
func fieldEnd(s string, n int) (end, next int) {
	i := 0
	for f := 0; ; f++ {
		for i < len(s) && isBlank(s[i]) {
			i++
		}
		for i < len(s) && !isBlank(s[i]) {
			i++
		}
		if f == n {
			break
		}
	}
	end = i
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	return end, i
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// parseMulLine splits a data line into its name part and the position
// of its sequence.
func parseMulLine(line string) (ml mulLine, ok bool) {
	fields := strings.Fields(line)
	ml.text = line
	switch {
	case fields[0] == "#=GC":
		if len(fields) < 2 {
			return ml, false
		}
		ml.markup, ml.token, ml.feature = aln.GC, "#=GC", fields[1]
		ml.key = "#=GC " + fields[1]
		ml.nameEnd, ml.start = fieldEnd(line, 1)
	case fields[0] == "#=GR":
		if len(fields) < 3 {
			return ml, false
		}
		ml.markup, ml.token, ml.feature = aln.GR, fields[1], fields[2]
		ml.key = "#=GR " + fields[1] + " " + fields[2]
		ml.nameEnd, ml.start = fieldEnd(line, 2)
	case fields[0] == "#=RF":
		ml.markup, ml.token = aln.GC, "#=RF"
		ml.key = "#=RF"
		ml.nameEnd, ml.start = fieldEnd(line, 0)
	default:
		ml.token = fields[0]
		ml.key = fields[0]
		ml.nameEnd, ml.start = fieldEnd(line, 0)
	}
	return ml, true
}

// ReadStockholm parses a Stockholm or "mul" alignment. Lines of the same
// row are concatenated. The sequence data of all rows begins at the
// same column unless a name runs past it, so leading blanks in a row
// are read as gaps.
func ReadStockholm(r io.Reader, opts Options) (*aln.Alignment, error) {
	opts.fill()
	a := aln.New()
	a.Sep = opts.Sep

	var lines []mulLine
	var gs []string
	minStart := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
scan:
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", trimmed == "//":
		case strings.HasPrefix(trimmed, MatchFooter):
			break scan
		case strings.HasPrefix(line, "#=GF"):
			a.Annotations = append(a.Annotations, line)
		case strings.HasPrefix(line, "#=GS"):
			a.Annotations = append(a.Annotations, line)
			gs = append(gs, line)
		case strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "#=GC") &&
			!strings.HasPrefix(line, "#=GR") && !strings.HasPrefix(line, "#=RF"):
			// comment
		default:
			ml, ok := parseMulLine(line)
			if !ok {
				log.Warningf("ignoring malformed markup line: %s", line)
				continue
			}
			if ml.start < len(line) && (minStart < 0 || ml.start < minStart) {
				minStart = ml.start
			}
			lines = append(lines, ml)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan stockholm: %w", err)
	}

	rows := make(map[string]*aln.Row)
	for _, ml := range lines {
		row, ok := rows[ml.key]
		if !ok {
			var err error
			if ml.markup == aln.GC {
				row = &aln.Row{Name: ml.token, Markup: aln.GC, Feature: ml.feature}
			} else if row, err = newRow(ml.token, ml.markup, opts); err != nil {
				return nil, err
			}
			row.Feature = ml.feature
			rows[ml.key] = row
			a.Append(row)
		}
		from := ml.start
		if minStart >= 0 && minStart > ml.nameEnd {
			from = minStart
		}
		if from < len(ml.text) {
			row.Seq = append(row.Seq, mulData(ml.text[from:])...)
		}
	}
	if err := finish(a); err != nil {
		return nil, err
	}
	for _, line := range gs {
		parseGS(a, line, opts)
	}
	return a, nil
}

// mulData turns blanks in sequence data into gaps.
func mulData(s string) []byte {
	b := []byte(s)
	for i, c := range b {
		if isBlank(c) {
			b[i] = '.'
		}
	}
	return b
}

// parseGS interprets the #=GS tags for row colour (LO) and organism.
func parseGS(a *aln.Alignment, line string, opts Options) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return
	}
	token, tag := fields[1], fields[2]
	_, valueStart := fieldEnd(line, 2)
	value := strings.TrimSpace(line[valueStart:])

	isOrg := len(tag) >= 2 && len(opts.OrgTag) >= 2 && strings.EqualFold(tag[:2], opts.OrgTag[:2])
	if tag != "LO" && !isOrg {
		return
	}

	name, start, end, coords, err := ParseName(token, opts.Sep)
	if err != nil {
		log.Warningf("#=GS line ignored: %v", err)
		return
	}
	var targets []*aln.Row
	for _, r := range a.Rows {
		if r.IsMarkup() || r.Name != name {
			continue
		}
		if coords && (r.Start != start || r.End != end) {
			continue
		}
		targets = append(targets, r)
	}
	if len(targets) == 0 {
		log.Warningf("#=GS line for unknown sequence %s ignored", token)
		return
	}

	if tag == "LO" {
		color, ok := bio.ParseColor(value)
		if !ok {
			log.Warningf("unknown colour %s for %s, using BLACK", value, token)
		}
		for _, r := range targets {
			r.Color = color
		}
		return
	}
	id := a.AddOrganism(value)
	for _, r := range targets {
		r.Org = id
	}
}

// WriteMul writes an alignment in Stockholm format. Annotation lines are
// written back as they were read; names are padded so that the
// sequences line up.
func WriteMul(w io.Writer, a *aln.Alignment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# STOCKHOLM 1.0")
	for _, line := range a.Annotations {
		fmt.Fprintln(bw, line)
	}
	if len(a.Annotations) > 0 {
		fmt.Fprintln(bw)
	}
	width := 0
	for _, r := range a.Rows {
		if n := len(a.FullName(r)); n > width {
			width = n
		}
	}
	for _, r := range a.Rows {
		fmt.Fprintf(bw, "%-*s %s\n", width, a.FullName(r), r.Seq)
	}
	fmt.Fprintln(bw, "//")
	return bw.Flush()
}

// Check validates the coordinates of all sequence rows. Rows without
// coordinates are numbered from 1. Rows whose coordinates disagree with
// their residue count are reported and kept as they are. The number of
// such rows is returned.
func Check(a *aln.Alignment) (bad int) {
	for _, r := range a.Rows {
		if r.IsMarkup() {
			continue
		}
		n := r.NRes()
		if r.Start == 0 && r.End == 0 {
			r.Start, r.End = 1, n
			continue
		}
		span := r.End - r.Start
		if span < 0 {
			span = -span
		}
		if span+1 != n {
			log.Warningf("%s: coordinates %d-%d give %d residues, found %d",
				r.Name, r.Start, r.End, span+1, n)
			bad++
		}
	}
	return
}
