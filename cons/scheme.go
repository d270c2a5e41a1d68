package cons

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/bio"
)

// Residue colour scheme names.
const (
	SchemeStandard       = "standard"
	SchemeHydrophobicity = "hydrophobicity"
	SchemeGibson         = "gibson"
	SchemeCys            = "cys"
	SchemeEmpty          = "empty"
	SchemeCustom         = "custom"
)

// SchemeNames lists the built in residue colour schemes.
var SchemeNames = []string{SchemeStandard, SchemeHydrophobicity, SchemeGibson, SchemeCys, SchemeEmpty}

// OrgColor is an organism colour read from a colour scheme file.
type OrgColor struct {
	Name  string
	Color bio.Color
}

// ColorScheme maps residue symbols to colours. Upper and lower case
// letters always share a colour.
type ColorScheme struct {
	Name   string
	colors [256]bio.Color
	// Organisms holds the #=OS lines of a scheme file.
	Organisms []OrgColor
}

// Color returns the colour of a symbol.
func (s *ColorScheme) Color(c byte) bio.Color {
	return s.colors[c]
}

// SetColor colours a letter in both cases.
func (s *ColorScheme) SetColor(c byte, color bio.Color) {
	s.colors[bio.Upper(c)] = color
	if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
		s.colors[bio.Upper(c)+'a'-'A'] = color
	}
}

func (s *ColorScheme) setAll(residues string, color bio.Color) {
	for i := 0; i < len(residues); i++ {
		s.SetColor(residues[i], color)
	}
}

// NewScheme returns a built in colour scheme.
func NewScheme(name string) (*ColorScheme, error) {
	s := &ColorScheme{Name: name}
	switch name {
	case SchemeStandard:
		s.setAll("GPST", bio.Orange)
		s.setAll("HKR", bio.Red)
		s.setAll("FWY", bio.Blue)
		s.setAll("ILMV", bio.Green)
	case SchemeHydrophobicity:
		s.setAll("IVLFC", bio.Red)
		s.setAll("MA", bio.LightRed)
		s.setAll("GTSWYP", bio.PaleRed)
	case SchemeGibson:
		s.setAll("AILMFWV", bio.Blue)
		s.setAll("KR", bio.Red)
		s.setAll("ED", bio.Magenta)
		s.setAll("NQST", bio.Green)
		s.SetColor('C', bio.PaleRed)
		s.SetColor('G', bio.Orange)
		s.SetColor('P', bio.Yellow)
		s.setAll("HY", bio.Cyan)
	case SchemeCys:
		s.SetColor('C', bio.Yellow)
		s.SetColor('G', bio.Orange)
		s.SetColor('P', bio.Green)
	case SchemeEmpty, SchemeCustom:
	default:
		return nil, fmt.Errorf("unknown colour scheme: %s", name)
	}
	return s, nil
}

// ReadColorScheme reads a custom colour scheme. Each line is either
// "<symbol> <COLOR>" or "#=OS <COLOR> <organism>"; other lines
// starting with # are comments. Unknown colour names give black.
func ReadColorScheme(r io.Reader) (*ColorScheme, error) {
	s := &ColorScheme{Name: SchemeCustom}
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "#=OS" {
			if len(fields) < 3 {
				log.Warningf("colour scheme line %d: organism colour without organism", n)
				continue
			}
			color := parseColor(fields[1], n)
			_, orgStart := splitFields(line, 2)
			s.Organisms = append(s.Organisms, OrgColor{Name: line[orgStart:], Color: color})
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if len(fields) < 2 || len(fields[0]) != 1 {
			log.Warningf("colour scheme line %d ignored: %s", n, line)
			continue
		}
		s.SetColor(fields[0][0], parseColor(fields[1], n))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading colour scheme: %w", err)
	}
	return s, nil
}

func parseColor(name string, line int) bio.Color {
	color, ok := bio.ParseColor(name)
	if !ok {
		log.Warningf("colour scheme line %d: unknown colour %s, using BLACK", line, name)
	}
	return color
}

// splitFields returns the position after the first n fields of s and
// the start of the next field.
func splitFields(s string, n int) (end, next int) {
	i := 0
	for f := 0; f < n; f++ {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		for i < len(s) && s[i] != ' ' && s[i] != '\t' {
			i++
		}
	}
	end = i
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return end, i
}

// ApplyOrganisms sets the colours of the organisms of an alignment
// named in the scheme. It returns the number of organisms coloured.
func (s *ColorScheme) ApplyOrganisms(a *aln.Alignment) (n int) {
	for _, oc := range s.Organisms {
		id, ok := a.FindOrganism(oc.Name)
		if !ok {
			log.Debugf("organism %s is not in the alignment", oc.Name)
			continue
		}
		a.Organism(id).Color = oc.Color
		n++
	}
	return
}

// WriteColorScheme writes the residue colours of a scheme and, if a is
// not nil, the colours of its organisms, in the format read by
// ReadColorScheme.
func WriteColorScheme(w io.Writer, s *ColorScheme, a *aln.Alignment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Belvu colour scheme %s\n", s.Name)
	for c := 0; c < 256; c++ {
		b := byte(c)
		if s.colors[b] == bio.White || b >= 'a' && b <= 'z' {
			continue
		}
		fmt.Fprintf(bw, "%c %s\n", b, s.colors[b])
	}
	if a != nil {
		for _, o := range a.Organisms() {
			fmt.Fprintf(bw, "#=OS %s %s\n", o.Color, o.Name)
		}
	}
	return bw.Flush()
}
