package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/experiment"
	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/sim"
	"github.com/san-kum/fdtd/internal/viz"
)

const (
	historyCapacity = 600
	maxStepsPerTick = 64
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	exp      *experiment.Experiment
	simCfg   sim.Config
	running  bool
	speed    int
	quantity sim.Quantity
	pol      fdtd.Polarization
	z        int
	wave     bool
	energy   []float64
	probe    []float64
	err      error

	lastFrame time.Time
	fps       float64
	width     int
	height    int
}

// NewLive returns the live model for an experiment that has been set up.
// The run continues past the configured step count until quit.
func NewLive(exp *experiment.Experiment) tea.Model {
	cfg := exp.Config()
	simCfg := cfg.SimConfig()
	return model{
		exp:      exp,
		simCfg:   simCfg,
		running:  true,
		speed:    1,
		quantity: sim.Voltage,
		pol:      fdtd.Z,
		z:        cfg.Grid.NZ / 2,
		energy:   make([]float64, 0, historyCapacity),
		probe:    make([]float64, 0, historyCapacity),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.running && m.err == nil {
			now := time.Now()
			if !m.lastFrame.IsZero() {
				if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
					m.fps = 1.0 / dt
				}
			}
			m.lastFrame = now
			for i := 0; i < m.speed && m.err == nil; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *model) step() {
	s := m.exp.Simulator()
	if err := s.Advance(m.simCfg); err != nil {
		m.err = err
		m.running = false
	}
	m.energy = appendCapped(m.energy, s.Engine().Energy())
	if probes := s.Probes(); len(probes) > 0 {
		m.probe = appendCapped(m.probe, probes[0].Read(s.Engine()))
	}
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	grid := m.exp.Config().Grid
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "+", "=":
		m.speed = min(m.speed*2, maxStepsPerTick)
	case "-", "_":
		m.speed = max(m.speed/2, 1)
	case "up", "k":
		m.z = min(m.z+1, grid.NZ-1)
	case "down", "j":
		m.z = max(m.z-1, 0)
	case "p":
		m.pol = fdtd.Polarizations[(int(m.pol)+1)%len(fdtd.Polarizations)]
	case "c":
		if m.quantity == sim.Voltage {
			m.quantity = sim.Current
		} else {
			m.quantity = sim.Voltage
		}
	case "w":
		m.wave = !m.wave
	case "t":
		viz.NextTheme()
	}
	return m, nil
}

func (m *model) reset() {
	if err := m.exp.Restart(); err != nil {
		m.err = err
		return
	}
	m.exp.Simulator().Rewind()
	m.energy = m.energy[:0]
	m.probe = m.probe[:0]
	m.err = nil
	m.running = true
}

func (m model) View() string {
	e := m.exp.Engine()
	cfg := m.exp.Config()
	var s strings.Builder

	status := green.Render("running")
	switch {
	case m.err != nil:
		status = red.Render("stopped: " + m.err.Error())
	case !m.running:
		status = viz.StatusPaused.Render("paused")
	}
	s.WriteString(viz.Title.Render(strings.ToUpper(cfg.Name)) + "  " + status + "\n")
	s.WriteString(dim.Render(fmt.Sprintf("grid %s  step %d  x%d/tick  %.0f fps  theme %s",
		cfg.Grid, e.Steps(), m.speed, m.fps, viz.CurrentTheme.Name)) + "\n\n")

	label := fmt.Sprintf("%s%s  z=%d", strings.ToUpper(m.quantity.String()[:1]), m.pol, m.z)
	plane := viz.Slice(e, m.quantity, m.pol, m.z).Fit(max((m.width-4)/2, 8), max(m.height-16, 6))
	s.WriteString(cyan.Render(label) + "\n")
	if m.wave {
		s.WriteString(viz.Wavefront(plane, plane.MaxAbs()/4).String())
	} else {
		s.WriteString(viz.HeatMap(plane, 0))
	}
	s.WriteString("\n")

	if len(m.energy) > 1 {
		s.WriteString(viz.Plot(m.energy, "energy", min(m.width-10, 60), 4) + "\n")
	}
	if len(m.probe) > 0 {
		s.WriteString(white.Render("probe ") + viz.SparklineChart(m.probe, min(m.width-10, 60)) + "\n")
	}

	s.WriteString("\n" + viz.KeyHint.Render("space pause  r reset  +/- speed  ↑/↓ slice  p pol  c V/I  w wave  t theme  q quit"))
	return s.String()
}

// RunLive sets up an experiment from cfg and runs the live view until quit.
func RunLive(cfg *config.Config) error {
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry().DefaultMetrics(cfg)); err != nil {
		return err
	}
	defer exp.Close()

	p := tea.NewProgram(NewLive(exp), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
