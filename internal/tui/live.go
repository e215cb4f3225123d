package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/sim"
	"github.com/san-kum/fdtd/internal/viz"
)

const (
	frameWidth  = 40
	frameHeight = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a sim.Observer that redraws the centre plane of one field
// component at most frameRate times a second.
type LiveRenderer struct {
	name      string
	frameRate int
	total     int
	out       io.Writer
	quantity  sim.Quantity
	pol       fdtd.Polarization
	lastFrame time.Time
	energy    []float64
}

func NewLiveRenderer(name string, frameRate, total int, out io.Writer) *LiveRenderer {
	return &LiveRenderer{
		name:      name,
		frameRate: max(frameRate, 1),
		total:     total,
		out:       out,
		quantity:  sim.Voltage,
		pol:       fdtd.Z,
		energy:    make([]float64, 0, total),
	}
}

// Watch selects the field component drawn.
func (r *LiveRenderer) Watch(q sim.Quantity, pol fdtd.Polarization) {
	r.quantity, r.pol = q, pol
}

func (r *LiveRenderer) OnStep(e *fdtd.Engine, step uint64) {
	r.energy = append(r.energy, e.Energy())

	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) && int(step) != r.total {
		return
	}
	r.lastFrame = time.Now()

	fmt.Fprint(r.out, r.frame(e, step))
}

func (r *LiveRenderer) frame(e *fdtd.Engine, step uint64) string {
	g := e.Grid()
	plane := viz.Slice(e, r.quantity, r.pol, g.NZ/2).Fit(frameWidth, frameHeight)

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  step %d/%d  %s%s z=%d\n", r.name, step, r.total,
		strings.ToUpper(r.quantity.String()[:1]), r.pol, g.NZ/2))
	b.WriteString("  " + strings.Repeat("-", 2*plane.W) + "\n")
	for _, line := range strings.Split(strings.TrimRight(viz.HeatMap(plane, 0), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("  " + strings.Repeat("-", 2*plane.W) + "\n")
	b.WriteString(fmt.Sprintf("  energy %.4g  peak %.4g  ", e.Energy(), plane.MaxAbs()))
	b.WriteString(viz.SparklineChart(r.energy, frameWidth) + "\n")
	return b.String()
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
