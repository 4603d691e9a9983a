package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rootlab/internal/plot"
	"github.com/san-kum/rootlab/internal/solver"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateReplay:
		return m.viewReplay()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("r o o t l a b") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.methods {
		desc := ""
		if info, err := m.registry.Describe(name); err == nil {
			desc = describe(info.Requirements)
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func describe(req solver.Requirements) string {
	var s string
	switch req.Derivatives {
	case 0:
		s = "derivative-free"
	case 1:
		s = "uses f'"
	default:
		s = fmt.Sprintf("uses f' .. f^(%d)", req.Derivatives)
	}
	if req.Bracket {
		s += ", bracket"
	}
	return s
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.req.Method) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 36)) + "\n\n")

	for i, f := range m.fields {
		val := m.value(f)
		if m.editing && i == m.fieldCursor {
			val = m.editBuf + "▋"
		}
		if i == m.fieldCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", f.name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", f.name)) + dim.Render(val) + "\n")
		}
	}

	if m.editErr != "" {
		b.WriteString("\n      " + red.Render(m.editErr) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  enter edit  s solve  esc back") + "\n")

	return b.String()
}

func (m model) viewReplay() string {
	if m.run == nil {
		return ""
	}
	res := m.run.Result
	h := res.History[:m.frame]

	cw := m.width - 10
	ch := m.height - 14
	if cw < 40 {
		cw = 40
	}
	if ch < 8 {
		ch = 8
	}

	var b strings.Builder

	icon, label := green.Render("●"), green.Render("playing")
	if !m.playing {
		icon, label = yellow.Render("○"), yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s\n", icon, cyan.Render(m.run.Request.Title()), label))

	barWidth := 36
	filled := barWidth
	if n := m.frames(); n > 0 {
		filled = m.frame * barWidth / n
	}
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("   %s %s\n\n", bar, dim.Render(fmt.Sprintf("%d/%d", m.frame, m.frames()))))

	for _, row := range errorCanvas(plot.LogErrors(h), len(res.History), cw, ch) {
		b.WriteString("   " + dimmer.Render("│") + string(row) + "\n")
	}
	b.WriteString("   " + dimmer.Render("└"+strings.Repeat("─", cw)) + "\n")

	if m.frame > 0 {
		last := h[len(h)-1]
		b.WriteString(fmt.Sprintf("\n   %s %s  %s %s\n",
			dim.Render("iteration"), white.Render(fmt.Sprintf("%d", last.Iteration)),
			dim.Render("|f(x)|"), white.Render(fmt.Sprintf("%.3e", last.Error))))
	} else {
		b.WriteString("\n   " + dim.Render("initial guess") + " " + white.Render(fmt.Sprintf("%g", m.run.Request.X0)) + "\n")
	}

	if m.frame >= m.frames() {
		b.WriteString("   " + statusStyle(res.Status).Render(res.Status.String()) +
			dim.Render(fmt.Sprintf("  x = %.15g  after %d iterations", res.X, res.Iterations)) + "\n")
		if res.Cause != nil {
			b.WriteString("   " + red.Render(res.Cause.Error()) + "\n")
		}
	}

	if len(h) > 1 {
		b.WriteString(fmt.Sprintf("   %s %s\n", dim.Render("log10 err"), cyan.Render(sparkline(plot.LogErrors(h), 24))))
	}

	b.WriteString("\n" + dim.Render("   space play  ←→ step  g/G ends  ±speed  c config  q quit") + "\n")

	return b.String()
}

func statusStyle(s solver.Status) lipgloss.Style {
	switch s {
	case solver.Converged:
		return green
	case solver.IterationLimitReached:
		return yellow
	}
	return red
}

// errorCanvas plots log errors against iteration. The horizontal axis spans
// total iterations so the picture grows as the replay advances.
func errorCanvas(logErrs []float64, total, w, h int) [][]rune {
	canvas := make([][]rune, h)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", w))
	}
	if len(logErrs) == 0 || total == 0 {
		return canvas
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range logErrs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	for i, v := range logErrs {
		x := 0
		if total > 1 {
			x = i * (w - 1) / (total - 1)
		}
		y := int((hi - v) / (hi - lo) * float64(h-1))
		set(canvas, x, y, '●', w, h)
	}
	return canvas
}

func set(canvas [][]rune, x, y int, c rune, w, h int) {
	if x >= 0 && x < w && y >= 0 && y < h {
		canvas[y][x] = c
	}
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		idx = max(0, min(idx, 7))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
