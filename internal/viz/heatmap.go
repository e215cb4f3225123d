package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/sim"
)

// Plane is a W by H slice of field samples, row-major with x fastest.
type Plane struct {
	W, H   int
	Values []float64
}

func (p Plane) At(x, y int) float64 { return p.Values[y*p.W+x] }

// MaxAbs returns the largest finite magnitude in the plane.
func (p Plane) MaxAbs() float64 {
	var m float64
	for _, v := range p.Values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			m = math.Max(m, math.Abs(v))
		}
	}
	return m
}

// Slice copies the xy plane at height z of one field component.
func Slice(e *fdtd.Engine, q sim.Quantity, pol fdtd.Polarization, z int) Plane {
	g := e.Grid()
	p := Plane{W: g.NX, H: g.NY, Values: make([]float64, g.NX*g.NY)}
	if e.Released() {
		return p
	}
	for y := 0; y < g.NY; y++ {
		for x := 0; x < g.NX; x++ {
			var v float32
			if q == sim.Current {
				v = e.CurrentAt(pol, x, y, z)
			} else {
				v = e.VoltageAt(pol, x, y, z)
			}
			p.Values[y*g.NX+x] = float64(v)
		}
	}
	return p
}

// Fit resamples the plane by nearest neighbour so it is at most w by h.
func (p Plane) Fit(w, h int) Plane {
	if w <= 0 || h <= 0 || (p.W <= w && p.H <= h) {
		return p
	}
	scale := math.Max(float64(p.W)/float64(w), float64(p.H)/float64(h))
	nw := max(1, int(float64(p.W)/scale))
	nh := max(1, int(float64(p.H)/scale))
	out := Plane{W: nw, H: nh, Values: make([]float64, nw*nh)}
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			sx := min(p.W-1, int(float64(x)*scale))
			sy := min(p.H-1, int(float64(y)*scale))
			out.Values[y*nw+x] = p.At(sx, sy)
		}
	}
	return out
}

// HeatMap shades every sample with the current theme, two columns per cell.
// Values are normalised by scale; a non-positive scale uses the plane's own
// peak. y grows upwards.
func HeatMap(p Plane, scale float64) string {
	if scale <= 0 {
		scale = p.MaxAbs()
	}
	if scale == 0 {
		scale = 1
	}

	theme := CurrentTheme
	var b strings.Builder
	for y := p.H - 1; y >= 0; y-- {
		for x := 0; x < p.W; x++ {
			b.WriteString(cell(p.At(x, y)/scale, theme))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cell(t float64, theme Theme) string {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Render("!!")
	}
	return lipgloss.NewStyle().Foreground(Shade(t, theme)).Render("██")
}

// Shade maps a normalised value in [-1, 1] onto the theme's diverging scale.
func Shade(t float64, theme Theme) lipgloss.Color {
	if t < 0 {
		return Lerp(theme.Neutral, theme.Negative, -t)
	}
	return Lerp(theme.Neutral, theme.Positive, t)
}

// Wavefront marks every cell whose magnitude exceeds threshold on a braille
// canvas, one sub-pixel per cell.
func Wavefront(p Plane, threshold float64) *Canvas {
	c := NewCanvas((p.W+1)/2, (p.H+3)/4)
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			if math.Abs(p.At(x, y)) > threshold {
				c.Set(x, p.H-1-y)
			}
		}
	}
	return c
}
