package alnio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/bio"
)

// ErrNoMSFBody is returned when an MSF file has no // line.
var ErrNoMSFBody = errors.New("MSF file has no // separator")

const (
	msfBlock = 50
	msfGroup = 10
)

// ReadMSF parses a GCG MSF alignment. Rows are declared by the Name:
// lines of the header and filled by the blocks after //.
func ReadMSF(r io.Reader, opts Options) (*aln.Alignment, error) {
	opts.fill()
	a := aln.New()
	a.Sep = opts.Sep

	rows := make(map[string]*aln.Row)
	body := false
	minLen := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if !body {
			switch {
			case line == "//":
				body = true
			case fields[0] == "Name:" && len(fields) > 1:
				if _, ok := rows[fields[1]]; ok {
					log.Warningf("MSF: duplicate sequence %s", fields[1])
					continue
				}
				row, err := newRow(fields[1], aln.NoMarkup, opts)
				if err != nil {
					return nil, err
				}
				rows[fields[1]] = row
				a.Append(row)
				for i := 2; i+1 < len(fields); i++ {
					if fields[i] == "Len:" {
						if n, err := strconv.Atoi(fields[i+1]); err == nil && n > minLen {
							minLen = n
						}
					}
				}
			}
			continue
		}
		row, ok := rows[fields[0]]
		if !ok {
			// position ruler or an unknown name
			continue
		}
		for _, f := range fields[1:] {
			row.Seq = append(row.Seq, []byte(strings.Replace(f, "~", ".", -1))...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan msf: %w", err)
	}
	if !body {
		return nil, ErrNoMSFBody
	}
	a.MaxLen = minLen
	if err := finish(a); err != nil {
		return nil, err
	}
	return a, nil
}

// msfSeq returns the row as written to MSF, gaps as '.'.
func msfSeq(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		if bio.IsGap(c) {
			out[i] = '.'
		} else {
			out[i] = c
		}
	}
	return out
}

// GCGChecksum computes the GCG checksum of a sequence.
func GCGChecksum(seq []byte) int {
	check := 0
	for i, c := range seq {
		check += (i%57 + 1) * int(bio.Upper(c))
	}
	return check % 10000
}

// WriteMSF writes the sequence rows of an alignment in GCG MSF format.
// Markup rows are not written.
func WriteMSF(w io.Writer, a *aln.Alignment) error {
	var names []string
	var seqs [][]byte
	width := 0
	grand := 0
	for _, r := range a.Rows {
		if r.IsMarkup() {
			continue
		}
		name := a.FullName(r)
		seq := msfSeq(r.Seq)
		names = append(names, name)
		seqs = append(seqs, seq)
		grand += GCGChecksum(seq)
		if len(name) > width {
			width = len(name)
		}
	}
	grand %= 10000

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "PileUp\n\n MSF: %d  Type: P  Check: %d  ..\n\n", a.MaxLen, grand)
	for i, name := range names {
		fmt.Fprintf(bw, " Name: %-*s  Len: %5d  Check: %4d  Weight: 1.0\n",
			width, name, a.MaxLen, GCGChecksum(seqs[i]))
	}
	fmt.Fprint(bw, "\n//\n\n")
	for from := 0; from < a.MaxLen; from += msfBlock {
		to := from + msfBlock
		if to > a.MaxLen {
			to = a.MaxLen
		}
		for i, name := range names {
			fmt.Fprintf(bw, "%-*s", width, name)
			for g := from; g < to; g += msfGroup {
				e := g + msfGroup
				if e > to {
					e = to
				}
				fmt.Fprintf(bw, " %s", seqs[i][g:e])
			}
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
