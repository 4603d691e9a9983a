package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/rootlab/internal/solver"
)

// BasinPoint records where one initial guess ended up. Cluster is -1 when
// the run did not converge.
type BasinPoint struct {
	X0      float64
	Status  solver.Status
	Root    float64
	Cluster int
}

// Basins pairs each initial guess with its result and cluster.
func Basins(x0s []float64, results []*solver.Result, clusters []Cluster) []BasinPoint {
	member := make(map[int]int)
	for ci, c := range clusters {
		for _, idx := range c.Runs {
			member[idx] = ci
		}
	}

	points := make([]BasinPoint, 0, len(x0s))
	for i, x0 := range x0s {
		p := BasinPoint{X0: x0, Cluster: -1}
		if i < len(results) && results[i] != nil {
			p.Status = results[i].Status
			p.Root = results[i].X
		}
		if ci, ok := member[i]; ok {
			p.Cluster = ci
		}
		points = append(points, p)
	}
	return points
}

const clusterGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func glyph(p BasinPoint) rune {
	switch {
	case p.Cluster >= 0 && p.Cluster < len(clusterGlyphs):
		return rune(clusterGlyphs[p.Cluster])
	case p.Cluster >= len(clusterGlyphs):
		return '*'
	}
	switch p.Status {
	case solver.IterationLimitReached:
		return '.'
	case solver.NumericalFailure:
		return 'x'
	case solver.InvalidInput:
		return '!'
	}
	return '?'
}

// BasinStrip renders one character per point: a letter per root cluster,
// '.' for iteration limit, 'x' for numerical failure and '!' for invalid
// input.
func BasinStrip(points []BasinPoint) string {
	var sb strings.Builder
	for _, p := range points {
		sb.WriteRune(glyph(p))
	}
	return sb.String()
}

// Legend describes the strip letters.
func Legend(clusters []Cluster) string {
	var sb strings.Builder
	for i, c := range clusters {
		if i >= len(clusterGlyphs) {
			sb.WriteString(fmt.Sprintf("  * %d more roots\n", len(clusters)-i))
			break
		}
		sb.WriteString(fmt.Sprintf("  %c root %.10g (%d runs)\n", clusterGlyphs[i], c.Root, c.Count))
	}
	sb.WriteString("  . iteration limit  x numerical failure  ! invalid input\n")
	return sb.String()
}

// BasinToASCII draws initial guess (horizontal) against the reached root
// (vertical) for converged points.
func BasinToASCII(points []BasinPoint, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range points {
		if p.Cluster < 0 {
			continue
		}
		if !found {
			minVal, maxVal = p.Root, p.Root
			found = true
			continue
		}
		minVal = min(minVal, p.Root)
		maxVal = max(maxVal, p.Root)
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range points {
		if p.Cluster < 0 {
			continue
		}
		col := i * width / len(points)
		if col >= width {
			col = width - 1
		}
		row := height - 1 - int((p.Root-minVal)/(maxVal-minVal)*float64(height-1))
		if row >= 0 && row < height {
			canvas[row][col] = glyph(p)
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
