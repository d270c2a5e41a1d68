// Package termview prints an alignment on a terminal, every residue on
// the background colour the conservation gives it.
package termview

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"bitbucket.org/Davydov/belvu/aln"
	"bitbucket.org/Davydov/belvu/bio"
	"bitbucket.org/Davydov/belvu/engine"
)

// DefaultWidth is the number of columns per block.
const DefaultWidth = 60

// palette caches one style per colour.
type palette struct {
	renderer *lipgloss.Renderer
	styles   map[bio.Color]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	return &palette{
		renderer: lipgloss.NewRenderer(w),
		styles:   make(map[bio.Color]lipgloss.Style),
	}
}

// render paints text on a colour; white is left unpainted.
func (p *palette) render(c bio.Color, text string) string {
	if c == bio.White {
		return text
	}
	st, ok := p.styles[c]
	if !ok {
		rgba := c.RGBA()
		hex := fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
		st = p.renderer.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color("#000000"))
		p.styles[c] = st
	}
	return st.Render(text)
}

// Write prints the visible rows of a session in blocks of width
// columns. Colours are only emitted if w is a colour terminal.
func Write(w io.Writer, s *engine.Session, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	a := s.Alignment
	p := newPalette(w)
	bw := bufio.NewWriter(w)
	for from := 0; from < a.MaxLen; from += width {
		to := from + width
		if to > a.MaxLen {
			to = a.MaxLen
		}
		if from > 0 {
			fmt.Fprintln(bw)
		}
		for _, r := range a.Rows {
			if r.Hide {
				continue
			}
			writeRow(bw, p, s, r, from, to)
		}
	}
	return bw.Flush()
}

// writeRow prints columns from..to-1 of a row, one style per run of
// equally coloured cells.
func writeRow(bw *bufio.Writer, p *palette, s *engine.Session, r *aln.Row, from, to int) {
	a := s.Alignment
	fmt.Fprintf(bw, "%-*s ", a.MaxFullNameLen, a.FullName(r))
	if a.DisplayScores {
		score := ""
		if !r.IsMarkup() {
			score = aln.FormatScore(r.Score)
		}
		fmt.Fprintf(bw, "%*s ", a.MaxScoreLen, score)
	}
	if to > len(r.Seq) {
		to = len(r.Seq)
	}
	for col := from; col < to; {
		c := s.Color(r, col)
		end := col + 1
		for end < to && s.Color(r, end) == c {
			end++
		}
		bw.WriteString(p.render(c, string(r.Seq[col:end])))
		col = end
	}
	bw.WriteByte('\n')
}
