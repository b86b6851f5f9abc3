// Package tui is a live benchmark view: every tick runs one call per engine,
// one engine after another, and folds the times into running statistics.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/quadsim/internal/bench"
	"github.com/san-kum/quadsim/internal/compute"
	"github.com/san-kum/quadsim/internal/quad"
	"github.com/san-kum/quadsim/internal/viz"
)

const (
	historyLen    = 40
	defaultPeriod = time.Second / 10
)

type row struct {
	name    string
	stats   bench.Stats
	history []float64
	value   float64
	err     error
}

type model struct {
	engines []compute.Engine
	params  quad.Params
	rows    []row
	period  time.Duration
	paused  bool
	rounds  int

	// inFlight is set while a round command is running; at most one exists.
	inFlight bool

	width  int
	height int
}

type tickMsg time.Time

// roundMsg carries one call per engine, in engine order.
type roundMsg struct {
	results []quad.Result
	errs    []error
}

func NewLive(engines []compute.Engine, p quad.Params) *model {
	m := &model{
		engines: engines,
		params:  p,
		period:  defaultPeriod,
		width:   80,
		height:  24,
	}
	m.reset()
	return m
}

func (m *model) reset() {
	m.rows = make([]row, len(m.engines))
	for i, e := range m.engines {
		m.rows[i] = row{name: e.Name(), stats: bench.NewStats(), history: make([]float64, 0, historyLen)}
	}
	m.rounds = 0
}

func (m model) Init() tea.Cmd { return m.tick() }

func (m model) tick() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) round() tea.Cmd {
	engines, p := m.engines, m.params
	return func() tea.Msg {
		msg := roundMsg{results: make([]quad.Result, len(engines)), errs: make([]error, len(engines))}
		for i, e := range engines {
			msg.results[i], msg.errs[i] = e.Integrate(p)
		}
		return msg
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.inFlight {
				return m, m.tick()
			}
		case "r":
			m.reset()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.paused || m.inFlight {
			return m, nil
		}
		m.inFlight = true
		return m, m.round()
	case roundMsg:
		m.inFlight = false
		m.fold(msg)
		if m.paused {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *model) fold(msg roundMsg) {
	rows := make([]row, len(m.rows))
	copy(rows, m.rows)
	for i := range rows {
		if i >= len(msg.results) {
			break
		}
		r := &rows[i]
		if err := msg.errs[i]; err != nil {
			r.err = err
			continue
		}
		res := msg.results[i]
		r.err = nil
		r.stats.Observe(res.Time)
		r.value = res.Value
		history := append(append([]float64(nil), r.history...), res.Time)
		if len(history) > historyLen {
			history = history[len(history)-historyLen:]
		}
		r.history = history
	}
	m.rows = rows
	m.rounds++
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(viz.Title.Render("quadsim live"))
	b.WriteString("  ")
	b.WriteString(viz.Subtle.Render(m.params.String()))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, r := range m.rows {
		nameWidth = max(nameWidth, len(r.name))
	}

	for _, r := range m.rows {
		b.WriteString(viz.MetricLabel.Render(fmt.Sprintf("%-*s", nameWidth, r.name)))
		b.WriteString("  ")
		switch {
		case r.err != nil:
			b.WriteString(viz.Fail.Render(r.err.Error()))
		case r.stats.Runs == 0:
			b.WriteString(viz.Subtle.Render("waiting"))
		default:
			snap, _ := r.stats.Snapshot()
			b.WriteString(viz.MetricValue.Render(fmt.Sprintf("%.3f", snap.Min)))
			b.WriteString(viz.Subtle.Render("/"))
			b.WriteString(viz.MetricValue.Render(fmt.Sprintf("%.3f", snap.Average)))
			b.WriteString(viz.Subtle.Render("/"))
			b.WriteString(viz.MetricValue.Render(fmt.Sprintf("%.3f", snap.Max)))
			b.WriteString(viz.Subtle.Render(" ms  "))
			b.WriteString(fmt.Sprintf("%.6f  ", r.value))
			b.WriteString(viz.Sparkline(r.history, historyLen))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("rounds %d", m.rounds)
	if m.paused {
		status += "  paused"
	}
	b.WriteString(viz.Subtle.Render(status))
	b.WriteString("\n")
	b.WriteString(viz.KeyHint.Render("space pause  r reset  q quit"))
	b.WriteString("\n")
	return b.String()
}

func RunLive(engines []compute.Engine, p quad.Params) error {
	prog := tea.NewProgram(NewLive(engines, p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
