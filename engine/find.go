package engine

import (
	"regexp"
	"strings"

	"bitbucket.org/Davydov/belvu/aln"
)

// wildcard compiles a name pattern where * matches any run of
// characters and ? a single one. Matching ignores case.
func wildcard(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, c := range pattern {
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteByte('$')
	return regexp.Compile(b.String())
}

// Find returns the indices of the sequence rows whose name or
// NAME/START-END matches a pattern, in display order.
func (s *Session) Find(pattern string) ([]int, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptySearch
	}
	re, err := wildcard(pattern)
	if err != nil {
		return nil, err
	}
	var found []int
	for i, r := range s.Alignment.Rows {
		if r.IsMarkup() {
			continue
		}
		if re.MatchString(r.Name) || re.MatchString(s.Alignment.FullName(r)) {
			found = append(found, i)
		}
	}
	return found, nil
}

// SelectName selects the first sequence matching a pattern after the
// current selection, wrapping around, and returns it. Nil is returned
// if nothing matches.
func (s *Session) SelectName(pattern string) (*aln.Row, error) {
	found, err := s.Find(pattern)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	i := found[0]
	cur := s.Alignment.SelectedIndex()
	for _, j := range found {
		if j > cur {
			i = j
			break
		}
	}
	s.Alignment.Select(i)
	return s.Alignment.Rows[i], nil
}
