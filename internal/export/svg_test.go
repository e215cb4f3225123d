package export

import (
	"strings"
	"testing"

	"github.com/san-kum/fdtd/internal/viz"
)

func TestPlaneToSVG(t *testing.T) {
	p := viz.Plane{W: 3, H: 2, Values: []float64{0, 1, 0, -1, 0, 0}}
	svg := PlaneToSVG(p, 10, 0, viz.ThemeThermal)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("malformed svg: %q", svg)
	}
	// background plus two non-zero cells
	if n := strings.Count(svg, "<rect"); n != 3 {
		t.Errorf("expected 3 rects, got %d", n)
	}
	if !strings.Contains(svg, `width="30" height="20"`) {
		t.Error("expected 30x20 canvas")
	}
	if !strings.Contains(svg, string(viz.ThemeThermal.Positive)) {
		t.Error("expected positive colour for the peak cell")
	}
	// y=0 is the bottom row of the image
	if !strings.Contains(svg, `x="10.0" y="10.0"`) {
		t.Errorf("expected +1 cell on the lower row of the image: %s", svg)
	}
}

func TestPlaneToSVGEmpty(t *testing.T) {
	if svg := PlaneToSVG(viz.Plane{}, 10, 0, viz.ThemeThermal); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2, "#00ff00")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `cx="1.0" cy="1.0"`) {
		t.Error("expected dot at origin")
	}
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{0, 1, 0}, 100, 50, "#ff0000")
	if !strings.Contains(svg, `stroke="#ff0000"`) {
		t.Error("expected stroke colour")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments: %s", svg)
	}
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single sample")
	}
}
