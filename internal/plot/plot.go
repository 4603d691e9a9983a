// Package plot renders convergence histories. Sinks are called only after
// a run has finished.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rootlab/internal/export"
	"github.com/san-kum/rootlab/internal/solver"
)

var ErrUnknownSink = errors.New("plot: unknown sink")

// Sink consumes a finished run's error history.
type Sink interface {
	Record(h solver.History, title string) error
}

// floor stands in for log10(0) when an iterate hits the root exactly.
const floor = -18.0

// LogErrors returns log10 of each error, clamped below at -18.
func LogErrors(h solver.History) []float64 {
	out := make([]float64, len(h))
	for i, p := range h {
		if p.Error <= 0 {
			out[i] = floor
			continue
		}
		out[i] = math.Max(math.Log10(p.Error), floor)
	}
	return out
}

type ASCII struct {
	w             io.Writer
	width, height int
}

func NewASCII(w io.Writer, width, height int) *ASCII {
	return &ASCII{w: w, width: width, height: height}
}

func (a *ASCII) Record(h solver.History, title string) error {
	if len(h) == 0 {
		_, err := fmt.Fprintf(a.w, "%s: no iterations recorded\n", title)
		return err
	}
	data := LogErrors(h)
	if len(data) == 1 {
		data = append(data, data[0])
	}

	opts := []asciigraph.Option{
		asciigraph.Caption(title + "  (log10 |f(x)| per iteration)"),
		asciigraph.Precision(1),
	}
	if a.height > 0 {
		opts = append(opts, asciigraph.Height(a.height))
	}
	if a.width > 0 {
		opts = append(opts, asciigraph.Width(a.width))
	}

	_, err := fmt.Fprintln(a.w, asciigraph.Plot(data, opts...))
	return err
}

type SVG struct {
	path          string
	width, height int
}

func NewSVG(path string, width, height int) *SVG {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 320
	}
	return &SVG{path: path, width: width, height: height}
}

func (s *SVG) Record(h solver.History, title string) error {
	logs := LogErrors(h)
	pts := make([]export.Point, len(logs))
	for i, v := range logs {
		pts[i] = export.Point{X: float64(h[i].Iteration), Y: v}
	}
	if len(pts) == 1 {
		pts = append(pts, export.Point{X: pts[0].X + 1, Y: pts[0].Y})
	}

	svg := export.PolylineToSVG(pts, s.width, s.height, "#00ff00", title, "log10 |f(x)|")
	if svg == "" {
		return fmt.Errorf("plot: %s: no iterations to draw", title)
	}
	return os.WriteFile(s.path, []byte(svg), 0644)
}

type discard struct{}

func (discard) Record(solver.History, string) error { return nil }

// New returns the sink named kind: ascii (to w), svg (to path) or none.
func New(kind string, w io.Writer, path string, width, height int) (Sink, error) {
	switch kind {
	case "ascii", "":
		return NewASCII(w, width, height), nil
	case "svg":
		if path == "" {
			return nil, fmt.Errorf("plot: svg sink needs an output path")
		}
		return NewSVG(path, width, height), nil
	case "none":
		return discard{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSink, kind)
}
