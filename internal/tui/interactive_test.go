package tui

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/experiment"
	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/sim"
	"github.com/san-kum/fdtd/internal/viz"
)

func newExperiment(t *testing.T) *experiment.Experiment {
	t.Helper()
	cfg := config.GetPreset("impulse")
	cfg.Grid = fdtd.Grid{NX: 8, NY: 8, NZ: 8}
	cfg.Center()
	exp := experiment.New(cfg)
	if err := exp.Setup(nil); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	t.Cleanup(exp.Close)
	return exp
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func TestLiveTickSteps(t *testing.T) {
	exp := newExperiment(t)
	var m tea.Model = NewLive(exp)

	m = update(t, m, tickMsg{})
	m = update(t, m, tickMsg{})

	if got := exp.Engine().Steps(); got != 2 {
		t.Errorf("expected 2 steps, got %d", got)
	}
	if len(m.(model).energy) != 2 {
		t.Errorf("expected 2 energy samples, got %d", len(m.(model).energy))
	}
	if m.(model).probe[0] != 1 {
		t.Errorf("expected impulse on the probe, got %v", m.(model).probe[0])
	}
}

func TestLivePause(t *testing.T) {
	exp := newExperiment(t)
	var m tea.Model = NewLive(exp)

	m = update(t, m, key(" "))
	m = update(t, m, tickMsg{})

	if exp.Engine().Steps() != 0 {
		t.Errorf("expected no steps while paused, got %d", exp.Engine().Steps())
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("expected paused status in view")
	}

	m = update(t, m, key(" "))
	m = update(t, m, tickMsg{})
	if exp.Engine().Steps() != 1 {
		t.Errorf("expected 1 step after resume, got %d", exp.Engine().Steps())
	}
}

func TestLiveReset(t *testing.T) {
	exp := newExperiment(t)
	var m tea.Model = NewLive(exp)

	for i := 0; i < 5; i++ {
		m = update(t, m, tickMsg{})
	}
	m = update(t, m, key("r"))

	if exp.Engine().Steps() != 0 || exp.Engine().Energy() != 0 {
		t.Errorf("expected fresh engine after reset, got step %d", exp.Engine().Steps())
	}
	if len(m.(model).energy) != 0 {
		t.Error("expected history cleared")
	}

	m = update(t, m, tickMsg{})
	if m.(model).probe[0] != 1 {
		t.Errorf("expected impulse to fire again after reset, got %v", m.(model).probe[0])
	}
}

func TestLiveQuit(t *testing.T) {
	_, cmd := NewLive(newExperiment(t)).Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLiveControls(t *testing.T) {
	defer viz.SetTheme("thermal")
	var m tea.Model = NewLive(newExperiment(t))

	m = update(t, m, key("+"))
	m = update(t, m, key("+"))
	if m.(model).speed != 4 {
		t.Errorf("expected speed 4, got %d", m.(model).speed)
	}
	m = update(t, m, key("-"))
	if m.(model).speed != 2 {
		t.Errorf("expected speed 2, got %d", m.(model).speed)
	}

	for i := 0; i < 10; i++ {
		m = update(t, m, key("k"))
	}
	if m.(model).z != 7 {
		t.Errorf("expected slice clamped to 7, got %d", m.(model).z)
	}

	m = update(t, m, key("p"))
	if m.(model).pol != fdtd.X {
		t.Errorf("expected polarization to wrap to x, got %v", m.(model).pol)
	}
	m = update(t, m, key("c"))
	if m.(model).quantity != sim.Current {
		t.Error("expected current view")
	}
	m = update(t, m, key("w"))
	if !m.(model).wave {
		t.Error("expected wavefront view")
	}
	m = update(t, m, key("t"))
	if viz.CurrentTheme.Name == "thermal" {
		t.Error("expected theme to change")
	}
	if !strings.Contains(m.View(), "Ix  z=7") {
		t.Error("expected current x label in view")
	}
}

func TestLiveStopsOnDivergence(t *testing.T) {
	exp := newExperiment(t)
	var m tea.Model = NewLive(exp)
	exp.Engine().SetCurrent(fdtd.Z, 2, 2, 2, float32(math.NaN()))

	m = update(t, m, tickMsg{})
	if m.(model).err == nil || m.(model).running {
		t.Fatal("expected live view to stop on non-finite fields")
	}
	steps := exp.Engine().Steps()
	m = update(t, m, tickMsg{})
	if exp.Engine().Steps() != steps {
		t.Error("expected no further steps after divergence")
	}
	if !strings.Contains(m.View(), "stopped") {
		t.Error("expected stopped status in view")
	}
}

func TestLiveRenderer(t *testing.T) {
	exp := newExperiment(t)
	var out bytes.Buffer
	r := NewLiveRenderer("impulse", 1000, 3, &out)
	exp.Simulator().AddObserver(r)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	r.Start()
	if _, err := exp.Run(ctx); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	r.Stop()

	if len(r.energy) != exp.Config().Steps {
		t.Errorf("expected %d energy samples, got %d", exp.Config().Steps, len(r.energy))
	}
	if !strings.Contains(out.String(), "impulse  step") {
		t.Error("expected a rendered frame")
	}
	if !strings.HasSuffix(out.String(), showCursor) {
		t.Error("expected cursor restored")
	}
}
