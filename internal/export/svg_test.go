package export

import (
	"strings"
	"testing"
)

func TestPolylineToSVG(t *testing.T) {
	pts := []Point{{0, -1}, {1, -3}, {2, -7}}
	svg := PolylineToSVG(pts, 400, 200, "#00ff00", "newton: x^2 - 3 < 0", "log10 |f(x)|")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(svg, `width="400"`) {
		t.Error("missing width")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
	if !strings.Contains(svg, "x^2 - 3 &lt; 0") {
		t.Error("title should be escaped")
	}
}

func TestPolylineToSVGTooShort(t *testing.T) {
	if svg := PolylineToSVG([]Point{{0, 0}}, 10, 10, "red", "", ""); svg != "" {
		t.Error("expected empty output for a single point")
	}
}
