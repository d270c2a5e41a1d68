// Package consplot draws the conservation profile of an alignment.
package consplot

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/belvu/cons"
)

// Options controls the plot.
type Options struct {
	Title string
	// Window is the size of the running average; 1 draws the raw
	// values only.
	Window        int
	Width, Height vg.Length
}

// DefaultOptions returns a 8x4 inch plot with a 5 column window.
func DefaultOptions() Options {
	return Options{Title: "Conservation", Window: 5, Width: 8 * vg.Inch, Height: 4 * vg.Inch}
}

// Smooth returns the running average of values over a centred window.
// Near the ends the window is truncated.
func Smooth(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window < 1 {
		window = 1
	}
	half := window / 2
	for i := range values {
		from, to := i-half, i-half+window
		if from < 0 {
			from = 0
		}
		if to > len(values) {
			to = len(values)
		}
		sum := 0.0
		for _, v := range values[from:to] {
			sum += v
		}
		out[i] = sum / float64(to-from)
	}
	return out
}

// points turns per column values into plot points, columns from 1.
func points(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	return pts
}

// New creates the conservation plot.
func New(c *cons.Conservation, opts Options) (*plot.Plot, error) {
	if len(c.Values) == 0 {
		return nil, fmt.Errorf("no columns to plot")
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Column"
	p.Y.Label.Text = fmt.Sprintf("Conservation (%s)", c.Settings().Mode)
	p.X.Min = 1
	p.X.Max = float64(len(c.Values))

	lines := []interface{}{"conservation", points(c.Values)}
	if opts.Window > 1 {
		lines = append(lines, fmt.Sprintf("window %d", opts.Window), points(Smooth(c.Values, opts.Window)))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteTo draws the plot in a format (png, svg, pdf, ...).
func WriteTo(w io.Writer, c *cons.Conservation, format string, opts Options) error {
	p, err := New(c, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save draws the plot to a file; the extension selects the format.
func Save(fname string, c *cons.Conservation, opts Options) error {
	p, err := New(c, opts)
	if err != nil {
		return err
	}
	if ext := strings.TrimPrefix(filepath.Ext(fname), "."); ext == "" {
		return fmt.Errorf("%s: no file extension to choose the format", fname)
	}
	return p.Save(opts.Width, opts.Height, fname)
}
