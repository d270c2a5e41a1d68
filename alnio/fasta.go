package alnio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/bio"
)

// FASTA errors.
var (
	ErrFastaStart  = errors.New("FASTA file should start with >")
	ErrFastaLength = errors.New("sequences in aligned FASTA differ in length")
)

// fastaWidth is the line width of written FASTA sequences.
const fastaWidth = 80

// ReadFasta parses a FASTA file. The first word of each header is the
// NAME/START-END token. If aligned is set, all sequences must have the
// same length; otherwise shorter sequences are padded with gaps.
func ReadFasta(r io.Reader, aligned bool, opts Options) (*aln.Alignment, error) {
	opts.fill()
	a := aln.New()
	a.Sep = opts.Sep

	var row *aln.Row
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("empty FASTA header in line %q", line)
			}
			var err error
			if row, err = newRow(fields[0], aln.NoMarkup, opts); err != nil {
				return nil, err
			}
			a.Append(row)
			continue
		}
		if row == nil {
			return nil, ErrFastaStart
		}
		for _, f := range strings.Fields(line) {
			row.Seq = append(row.Seq, f...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan fasta: %w", err)
	}
	if aligned {
		for _, r := range a.Rows {
			if len(r.Seq) != len(a.Rows[0].Seq) {
				return nil, fmt.Errorf("%w: %s has %d columns, %s has %d", ErrFastaLength,
					r.Name, len(r.Seq), a.Rows[0].Name, len(a.Rows[0].Seq))
			}
		}
	}
	if err := finish(a); err != nil {
		return nil, err
	}
	return a, nil
}

// WriteFasta writes the sequence rows in FASTA format. Aligned output
// keeps the columns with gaps as '-'; otherwise gaps are removed.
func WriteFasta(w io.Writer, a *aln.Alignment, aligned bool) error {
	bw := bufio.NewWriter(w)
	for _, r := range a.Rows {
		if r.IsMarkup() {
			continue
		}
		seq := make([]byte, 0, len(r.Seq))
		for _, c := range r.Seq {
			switch {
			case !bio.IsGap(c):
				seq = append(seq, c)
			case aligned:
				seq = append(seq, '-')
			}
		}
		fmt.Fprintf(bw, ">%s\n", a.FullName(r))
		fmt.Fprint(bw, bio.Wrap(string(seq), fastaWidth))
	}
	return bw.Flush()
}
