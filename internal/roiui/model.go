// Package roiui provides the Bubble Tea time-savings calculator.
package roiui

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/model"
	"github.com/verte-zerg/agentshift/internal/report"
	"github.com/verte-zerg/agentshift/internal/roi"
	"github.com/verte-zerg/agentshift/internal/theme"
)

const (
	fieldMinutes = iota
	fieldFrequency
	fieldTask
	fieldSavings
	fieldRate
	fieldToolCost
	fieldCount
)

const plotHeight = 6

var errIncomplete = errors.New("fill in the form to see your savings")

// Model implements the Bubble Tea calculator UI.
type Model struct {
	theme   theme.Theme
	logger  *zap.Logger
	presets []content.Preset
	initial model.ROISettings

	inputs      map[int]*textinput.Model
	frequencies []roi.Frequency
	freqIndex   int
	taskIndex   int
	focus       int

	request   roi.Request
	result    roi.Result
	hasResult bool
	formError string

	width  int
	height int
}

// NewModel constructs a calculator prefilled from settings.
func NewModel(presets []content.Preset, settings model.ROISettings, th theme.Theme, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		theme:       th,
		logger:      logger,
		presets:     presets,
		initial:     settings,
		frequencies: roi.Frequencies(),
	}
	m.reset()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
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
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			m.reset()
			return m, nil
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "enter":
			m.Calculate()
			return m, nil
		case "left", "right":
			if m.cycle(msg.String() == "right") {
				return m, nil
			}
		}
		if input, ok := m.inputs[m.focus]; ok {
			var cmd tea.Cmd
			*input, cmd = input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if input, ok := m.inputs[m.focus]; ok {
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Calculate validates the form and replaces the current result. An
// incomplete form leaves no result.
func (m *Model) Calculate() {
	req, err := m.buildRequest()
	if err != nil {
		m.hasResult = false
		m.formError = err.Error()
		return
	}
	res, err := roi.Calculate(req)
	if err != nil {
		m.hasResult = false
		m.formError = err.Error()
		return
	}
	m.request = req
	m.result = res
	m.hasResult = true
	m.formError = ""
	m.logger.Debug("savings calculated",
		zap.Float64("manual_minutes", req.ManualMinutes),
		zap.String("frequency", string(req.Frequency)),
		zap.Float64("savings_percent", req.SavingsPercent),
		zap.Float64("net_value", res.NetValue),
		zap.String("break_even", res.BreakEven.String()))
}

// Result returns the last calculated result.
func (m *Model) Result() (roi.Result, bool) {
	return m.result, m.hasResult
}

func (m *Model) reset() {
	m.inputs = map[int]*textinput.Model{
		fieldMinutes:  newInput("Manual minutes per task: ", "e.g. 60"),
		fieldSavings:  newInput("Savings % override: ", ""),
		fieldRate:     newInput("Hourly rate ($): ", "e.g. 50"),
		fieldToolCost: newInput("Tool cost per month ($): ", "0"),
	}
	s := m.initial
	if s.ManualMinutes > 0 {
		m.inputs[fieldMinutes].SetValue(formatNumber(s.ManualMinutes))
	}
	if s.HourlyRate > 0 {
		m.inputs[fieldRate].SetValue(formatNumber(s.HourlyRate))
	}
	if s.MonthlyToolCost > 0 {
		m.inputs[fieldToolCost].SetValue(formatNumber(s.MonthlyToolCost))
	}
	if s.SavingsPercent != nil {
		m.inputs[fieldSavings].SetValue(formatNumber(*s.SavingsPercent))
	}
	m.freqIndex = indexOfFrequency(m.frequencies, roi.Frequency(s.Frequency))
	m.taskIndex = 0
	for i, p := range m.presets {
		if p.ID == s.Task {
			m.taskIndex = i
		}
	}
	m.hasResult = false
	m.result = roi.Result{}
	m.formError = ""
	m.setFocus(fieldMinutes)
}

func newInput(prompt, placeholder string) *textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 12
	input.Cursor.SetMode(cursor.CursorBlink)
	return &input
}

func (m *Model) setFocus(idx int) tea.Cmd {
	m.focus = (idx + fieldCount) % fieldCount
	var cmd tea.Cmd
	for field, input := range m.inputs {
		if field == m.focus {
			cmd = input.Focus()
			continue
		}
		input.Blur()
	}
	m.refreshSavingsPlaceholder()
	return cmd
}

func (m *Model) cycle(forward bool) bool {
	step := -1
	if forward {
		step = 1
	}
	switch m.focus {
	case fieldFrequency:
		n := len(m.frequencies)
		m.freqIndex = (m.freqIndex + step + n) % n
		return true
	case fieldTask:
		n := len(m.presets)
		if n == 0 {
			return true
		}
		m.taskIndex = (m.taskIndex + step + n) % n
		m.refreshSavingsPlaceholder()
		return true
	}
	return false
}

func (m *Model) refreshSavingsPlaceholder() {
	if p, ok := m.currentPreset(); ok {
		m.inputs[fieldSavings].Placeholder = fmt.Sprintf("%s preset", formatNumber(p.Savings))
	}
}

func (m *Model) currentPreset() (content.Preset, bool) {
	if m.taskIndex < 0 || m.taskIndex >= len(m.presets) {
		return content.Preset{}, false
	}
	return m.presets[m.taskIndex], true
}

// buildRequest reads the form. Empty required fields report errIncomplete.
func (m *Model) buildRequest() (roi.Request, error) {
	minutes, err := parseField(m.inputs[fieldMinutes].Value(), true, "manual minutes")
	if err != nil {
		return roi.Request{}, err
	}
	rate, err := parseField(m.inputs[fieldRate].Value(), true, "hourly rate")
	if err != nil {
		return roi.Request{}, err
	}
	toolCost, err := parseField(m.inputs[fieldToolCost].Value(), false, "tool cost")
	if err != nil {
		return roi.Request{}, err
	}
	savings := 0.0
	if raw := strings.TrimSpace(m.inputs[fieldSavings].Value()); raw != "" {
		savings, err = parseField(raw, true, "savings percent")
		if err != nil {
			return roi.Request{}, err
		}
	} else if p, ok := m.currentPreset(); ok {
		savings = p.Savings
	} else {
		return roi.Request{}, errIncomplete
	}
	req := roi.Request{
		ManualMinutes:   minutes,
		Frequency:       m.frequencies[m.freqIndex],
		HourlyRate:      rate,
		MonthlyToolCost: toolCost,
		SavingsPercent:  savings,
	}
	if err := req.Validate(); err != nil {
		return roi.Request{}, err
	}
	return req, nil
}

func parseField(raw string, required bool, name string) (float64, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if raw == "" {
		if required {
			return 0, errIncomplete
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func indexOfFrequency(freqs []roi.Frequency, f roi.Frequency) int {
	for i, candidate := range freqs {
		if candidate == f {
			return i
		}
	}
	for i, candidate := range freqs {
		if candidate == roi.Weekly {
			return i
		}
	}
	return 0
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		m.theme.Title.Render("Time savings calculator"),
		m.renderForm(),
		m.renderResult(),
		m.theme.Footer.Render("tab/↑↓: field  ←/→: change option  enter: calculate  ctrl+r: reset  esc: quit"),
	}
	view := strings.Join(sections, "\n\n")
	if m.width == 0 || m.height == 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, view)
}

func (m *Model) renderForm() string {
	lines := make([]string, 0, fieldCount)
	for field := 0; field < fieldCount; field++ {
		var line string
		switch field {
		case fieldFrequency:
			line = m.selector("Frequency: ", m.frequencies[m.freqIndex].Label(), field)
		case fieldTask:
			label := "none"
			if p, ok := m.currentPreset(); ok {
				label = fmt.Sprintf("%s (%s%%)", p.Label, formatNumber(p.Savings))
			}
			line = m.selector("Task type: ", label, field)
		default:
			line = m.inputs[field].View()
		}
		lines = append(lines, line)
	}
	if _, err := m.buildRequest(); err != nil {
		lines = append(lines, "", m.theme.Muted.Render("[ calculate ]"))
	} else {
		lines = append(lines, "", m.theme.Selected.Render("[ calculate ]"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) selector(prompt, value string, field int) string {
	if m.focus == field {
		return m.theme.FocusedField.Render(prompt + "◀ " + value + " ▶")
	}
	return m.theme.BlurredField.Render(prompt + value)
}

func (m *Model) renderResult() string {
	if !m.hasResult {
		msg := errIncomplete.Error()
		if m.formError != "" && m.formError != msg {
			return m.theme.Error.Render(m.formError)
		}
		return m.theme.Muted.Render(strings.ToUpper(msg[:1]) + msg[1:] + ".")
	}
	res := m.result
	cards := []string{
		m.theme.MetricCard("Saved per task", report.Minutes(res.SavedMinutes)),
		m.theme.MetricCard("Weekly", report.Hours(res.WeeklyHours)),
		m.theme.MetricCard("Annual", report.Hours(res.AnnualHours)),
		m.theme.MetricCard("Annual value", report.WholeMoney(res.AnnualValue)),
		m.theme.MetricCard("Net value", report.WholeMoney(res.NetValue)),
		m.theme.MetricCard("Break-even", res.BreakEven.String()),
	}
	var grid string
	if m.width > 0 && m.width < 80 {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	} else {
		grid = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...),
		)
	}

	var buf bytes.Buffer
	plotWidth := m.width - 20
	if plotWidth <= 0 {
		plotWidth = 52
	}
	if err := report.PlotProjection(&buf, roi.Project(res, 52), plotWidth, plotHeight, true); err != nil {
		return grid + "\n" + m.theme.Error.Render(fmt.Sprintf("failed to render projection: %v", err))
	}
	return grid + "\n\n" + strings.TrimRight(buf.String(), "\n")
}
