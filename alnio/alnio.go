// Package alnio reads and writes alignments in Stockholm ("mul"), MSF
// and FASTA formats.
package alnio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/aln"
)

// log is the global logging variable.
var log = logging.MustGetLogger("alnio")

var (
	// ErrNoSequences is returned when a file has no alignment rows.
	ErrNoSequences = errors.New("no sequences found")
	// ErrNoColumns is returned when all alignment rows are empty.
	ErrNoColumns = errors.New("alignment has no columns")
)

// Format is an alignment file format.
type Format int

const (
	// Auto means the format is detected from the input.
	Auto Format = iota
	Stockholm
	MSF
	FastaAligned
	FastaUnaligned
)

func (f Format) String() string {
	switch f {
	case Auto:
		return "auto"
	case Stockholm:
		return "stockholm"
	case MSF:
		return "msf"
	case FastaAligned:
		return "fasta"
	case FastaUnaligned:
		return "fasta-unaligned"
	}
	return "unknown"
}

// ParseFormat returns a format constant from its name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return Auto, nil
	case "stockholm", "mul", "selex":
		return Stockholm, nil
	case "msf":
		return MSF, nil
	case "fasta", "afa", "fasta-aligned":
		return FastaAligned, nil
	case "fasta-unaligned", "fa":
		return FastaUnaligned, nil
	}
	return Auto, fmt.Errorf("unknown alignment format: %s", s)
}

// Options controls how names and annotations are interpreted.
type Options struct {
	// Sep separates name and coordinates, '/' or '=' (GCG).
	Sep byte
	// OrgTag is the #=GS tag naming the organism; only the first two
	// characters are compared, ignoring case.
	OrgTag string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Sep: aln.DefaultSep, OrgTag: "OS"}
}

func (o *Options) fill() {
	if o.Sep == 0 {
		o.Sep = aln.DefaultSep
	}
	if o.OrgTag == "" {
		o.OrgTag = "OS"
	}
}

// Sniff guesses the format of an alignment from its beginning.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) > 0 && data[0] == '>' {
		return FastaAligned
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "//" {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "MSF:") ||
			(strings.Contains(line, "Type:") && strings.Contains(line, "Check:")) {
			return MSF
		}
	}
	return Stockholm
}

// Read parses an alignment. With the Auto format, the format is
// detected first. The detected format is returned.
func Read(r io.Reader, format Format, opts Options) (*aln.Alignment, Format, error) {
	opts.fill()
	br := bufio.NewReader(r)
	if format == Auto {
		// Peek at the first symbol, leaving it in the reader.
		for {
			c, err := br.ReadByte()
			if err != nil {
				if err == io.EOF {
					return nil, Auto, ErrNoSequences
				}
				return nil, Auto, err
			}
			if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
				continue
			}
			br.UnreadByte()
			if c == '>' {
				format = FastaAligned
			}
			break
		}
	}
	data, err := ioutil.ReadAll(br)
	if err != nil {
		return nil, format, fmt.Errorf("reading alignment: %w", err)
	}
	if format == Auto {
		format = Sniff(data)
	}
	log.Debugf("reading %s alignment", format)

	var a *aln.Alignment
	switch format {
	case Stockholm:
		a, err = ReadStockholm(bytes.NewReader(data), opts)
	case MSF:
		a, err = ReadMSF(bytes.NewReader(data), opts)
	case FastaAligned:
		a, err = ReadFasta(bytes.NewReader(data), true, opts)
	case FastaUnaligned:
		a, err = ReadFasta(bytes.NewReader(data), false, opts)
	default:
		err = fmt.Errorf("cannot read format %s", format)
	}
	if err != nil {
		return nil, format, err
	}
	Check(a)
	return a, format, nil
}

// ReadFile reads an alignment from a file, standard input if the name
// is empty or "-".
func ReadFile(fname string, format Format, opts Options) (*aln.Alignment, Format, error) {
	var f io.ReadCloser = os.Stdin
	if fname != "" && fname != "-" {
		var err error
		if f, err = os.Open(fname); err != nil {
			return nil, format, err
		}
	}
	defer f.Close()
	a, format, err := Read(f, format, opts)
	if err != nil {
		return nil, format, fmt.Errorf("%s: %w", fname, err)
	}
	log.Infof("Read %s: %d rows, %d columns (%s)", fname, a.NRows(), a.MaxLen, format)
	return a, format, nil
}

// Write writes an alignment in a given format.
func Write(w io.Writer, a *aln.Alignment, format Format) error {
	switch format {
	case Stockholm, Auto:
		return WriteMul(w, a)
	case MSF:
		return WriteMSF(w, a)
	case FastaAligned:
		return WriteFasta(w, a, true)
	case FastaUnaligned:
		return WriteFasta(w, a, false)
	}
	return fmt.Errorf("cannot write format %s", format)
}

// WriteFile writes an alignment to a file, standard output if the
// name is empty or "-".
func WriteFile(fname string, a *aln.Alignment, format Format) (err error) {
	if fname == "" || fname == "-" {
		return Write(os.Stdout, a, format)
	}
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("creating output alignment file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err = Write(bw, a, format); err != nil {
		return err
	}
	return bw.Flush()
}

// ParseName splits NAME<sep>START-END. If there is no separator, the
// whole token is the name and coords is false. A separator not
// followed by two integers is an error.
func ParseName(token string, sep byte) (name string, start, end int, coords bool, err error) {
	i := strings.LastIndexByte(token, sep)
	if i < 0 {
		return token, 0, 0, false, nil
	}
	name, rest := token[:i], token[i+1:]
	// START may be negative, so look for the dash after its first symbol.
	j := -1
	if len(rest) > 1 {
		j = strings.IndexByte(rest[1:], '-')
	}
	if name == "" || j < 0 {
		return "", 0, 0, false, fmt.Errorf("error parsing %q: expected NAME%cSTART-END", token, sep)
	}
	j++
	if start, err = strconv.Atoi(rest[:j]); err != nil {
		return "", 0, 0, false, fmt.Errorf("error parsing start of %q: %w", token, err)
	}
	if end, err = strconv.Atoi(rest[j+1:]); err != nil {
		return "", 0, 0, false, fmt.Errorf("error parsing end of %q: %w", token, err)
	}
	return name, start, end, true, nil
}

// newRow creates a row from a NAME<sep>START-END token.
func newRow(token string, markup aln.Markup, opts Options) (*aln.Row, error) {
	name, start, end, _, err := ParseName(token, opts.Sep)
	if err != nil {
		return nil, err
	}
	return &aln.Row{Name: name, Start: start, End: end, Markup: markup}, nil
}

// finish checks that rows were read and pads them to the same length.
func finish(a *aln.Alignment) error {
	if a.NRows() == 0 {
		return ErrNoSequences
	}
	a.Pad()
	if a.MaxLen == 0 {
		return ErrNoColumns
	}
	aln.Order(a.Rows)
	return nil
}
