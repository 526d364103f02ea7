// Package demoui animates doer versus orchestrator demos with staged timers.
package demoui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/theme"
	"github.com/verte-zerg/agentshift/internal/timer"
)

const barWidth = 40

// tickMsg drives one lane. gen ties the message to a single run so ticks
// scheduled before a reset are dropped.
type tickMsg struct {
	lane int
	gen  uint64
}

type lane struct {
	name   string
	timer  *timer.Timer
	bar    progress.Model
	phase  int
	phases []timer.Phase
}

// Options configures a demo model.
type Options struct {
	Tick  time.Duration
	Clock timer.Clock
}

// Model implements the Bubble Tea demo UI.
type Model struct {
	demo   content.Demo
	theme  theme.Theme
	logger *zap.Logger
	lanes  []*lane
	width  int
	height int
}

// NewModel builds one timer per lane of demo.
func NewModel(demo content.Demo, th theme.Theme, logger *zap.Logger, opts Options) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{demo: demo, theme: th, logger: logger}
	for _, l := range demo.Lanes {
		t, err := newLaneTimer(l, opts, logger)
		if err != nil {
			return nil, err
		}
		m.lanes = append(m.lanes, &lane{
			name:   l.Name,
			timer:  t,
			bar:    progress.New(progress.WithSolidFill(string(th.Accent)), progress.WithoutPercentage(), progress.WithWidth(barWidth)),
			phase:  -1,
			phases: t.Config().Phases,
		})
	}
	return m, nil
}

func newLaneTimer(l content.Lane, opts Options, logger *zap.Logger) (*timer.Timer, error) {
	cfg, err := l.TimerConfig(opts.Tick)
	if err != nil {
		return nil, err
	}
	timerOpts := []timer.Option{
		timer.OnComplete(func(st timer.State) {
			logger.Debug("lane complete", zap.String("lane", l.Name), zap.Duration("elapsed", st.Elapsed))
		}),
	}
	if opts.Clock != nil {
		timerOpts = append(timerOpts, timer.WithClock(opts.Clock))
	}
	return timer.New(cfg, timerOpts...)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.Reset()
			return m, tea.Quit
		case " ", "enter":
			return m, m.Start()
		case "r":
			m.Reset()
			return m, nil
		}
	case tickMsg:
		return m, m.handleTick(msg)
	}
	return m, nil
}

// Start launches every lane that is not already running.
func (m *Model) Start() tea.Cmd {
	if m.Running() {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.lanes))
	for i, l := range m.lanes {
		gen := l.timer.Start()
		l.phase = l.timer.State().Phase
		cmds = append(cmds, m.tickCmd(i, gen))
	}
	m.logger.Info("demo started", zap.String("demo", m.demo.ID))
	return tea.Batch(cmds...)
}

// Reset stops every lane. Ticks already scheduled are ignored.
func (m *Model) Reset() {
	for _, l := range m.lanes {
		l.timer.Reset()
		l.phase = -1
	}
}

// Running reports whether any lane is running.
func (m *Model) Running() bool {
	for _, l := range m.lanes {
		if l.timer.State().Status == timer.Running {
			return true
		}
	}
	return false
}

// Finished reports whether every lane has completed.
func (m *Model) Finished() bool {
	if len(m.lanes) == 0 {
		return false
	}
	for _, l := range m.lanes {
		if l.timer.State().Status != timer.Complete {
			return false
		}
	}
	return true
}

// States returns the current state of each lane.
func (m *Model) States() []timer.State {
	states := make([]timer.State, len(m.lanes))
	for i, l := range m.lanes {
		states[i] = l.timer.State()
	}
	return states
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.lane < 0 || msg.lane >= len(m.lanes) {
		return nil
	}
	l := m.lanes[msg.lane]
	st, ok := l.timer.Tick(msg.gen)
	if !ok {
		return nil
	}
	if st.Phase != l.phase {
		l.phase = st.Phase
		m.logger.Debug("phase changed",
			zap.String("lane", l.name),
			zap.String("phase", st.PhaseName),
			zap.Duration("elapsed", st.Elapsed))
	}
	if st.Status != timer.Running {
		return nil
	}
	return m.tickCmd(msg.lane, msg.gen)
}

func (m *Model) tickCmd(idx int, gen uint64) tea.Cmd {
	return tea.Tick(m.lanes[idx].timer.Interval(), func(time.Time) tea.Msg {
		return tickMsg{lane: idx, gen: gen}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	parts := []string{m.theme.Title.Render(m.demo.Title)}
	if m.demo.Description != "" {
		parts = append(parts, m.theme.Muted.Render(m.demo.Description))
	}
	for _, l := range m.lanes {
		parts = append(parts, m.renderLane(l))
	}
	if summary := m.summary(); summary != "" {
		parts = append(parts, m.theme.Done.Render(summary))
	}
	parts = append(parts, m.theme.Footer.Render("space: start  r: reset  q: quit"))
	view := strings.Join(parts, "\n\n")
	if m.width == 0 || m.height == 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}

func (m *Model) renderLane(l *lane) string {
	st := l.timer.State()
	header := fmt.Sprintf("%s  %s", m.theme.Selected.Render(l.name), m.theme.Muted.Render(laneClock(st)))
	lines := []string{header, l.bar.ViewAs(st.Progress)}
	for i, p := range l.phases {
		lines = append(lines, m.phaseLine(st, i, p.Name))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) phaseLine(st timer.State, idx int, name string) string {
	switch {
	case st.Status == timer.Complete || (st.Status == timer.Running && idx < st.Phase):
		return m.theme.Done.Render("✓ " + name)
	case st.Status == timer.Running && idx == st.Phase:
		return m.theme.Selected.Render("▸ " + name)
	default:
		return m.theme.Muted.Render("· " + name)
	}
}

func laneClock(st timer.State) string {
	return fmt.Sprintf("%.1fs / %.1fs", st.Elapsed.Seconds(), st.Total.Seconds())
}

// summary compares the slowest and fastest lane once all lanes are done.
func (m *Model) summary() string {
	if !m.Finished() || len(m.lanes) < 2 {
		return ""
	}
	slow, fast := m.lanes[0], m.lanes[0]
	for _, l := range m.lanes[1:] {
		if l.timer.Config().Total > slow.timer.Config().Total {
			slow = l
		}
		if l.timer.Config().Total < fast.timer.Config().Total {
			fast = l
		}
	}
	fastTotal := fast.timer.Config().Total
	if fastTotal <= 0 || slow == fast {
		return ""
	}
	ratio := float64(slow.timer.Config().Total) / float64(fastTotal)
	return fmt.Sprintf("%s finished %.1fx faster than %s.", fast.name, ratio, slow.name)
}
