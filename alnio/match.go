package alnio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"bitbucket.org/Davydov/belvu/aln"
)

// ErrMatchRows is returned when a match file does not hold exactly one
// sequence.
var ErrMatchRows = errors.New("match file should contain a single sequence")

// ReadMatch reads a match file: one sequence in any alignment format,
// a "# matchFooter" line and the matching segments, one per line as
// QSTART QEND ASTART AEND.
func ReadMatch(r io.Reader, opts Options) (*aln.Row, []aln.Segment, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading match: %w", err)
	}
	var head, tail []byte
	if i := bytes.Index(data, []byte(MatchFooter)); i >= 0 {
		head = data[:i]
		tail = data[i+len(MatchFooter):]
	} else {
		return nil, nil, fmt.Errorf("match file has no %q line", MatchFooter)
	}

	a, _, err := Read(bytes.NewReader(head), Auto, opts)
	if err != nil {
		return nil, nil, err
	}
	if a.NSeq() != 1 {
		return nil, nil, fmt.Errorf("%w, found %d", ErrMatchRows, a.NSeq())
	}
	var row *aln.Row
	for _, r := range a.Rows {
		if !r.IsMarkup() {
			row = r
		}
	}

	var segs []aln.Segment
	scanner := bufio.NewScanner(bytes.NewReader(tail))
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, nil, fmt.Errorf("match segment %d: expected 4 numbers, got %q", n, line)
		}
		var v [4]int
		for i, f := range fields {
			if v[i], err = strconv.Atoi(f); err != nil {
				return nil, nil, fmt.Errorf("match segment %d: %w", n, err)
			}
		}
		segs = append(segs, aln.Segment{QStart: v[0], QEnd: v[1], AStart: v[2], AEnd: v[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if len(segs) == 0 {
		return nil, nil, errors.New("match file has no segments")
	}
	return row, segs, nil
}
