// Package quizui provides the Bubble Tea self-assessment quiz.
package quizui

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/report"
	"github.com/verte-zerg/agentshift/internal/score"
	"github.com/verte-zerg/agentshift/internal/theme"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Choose  key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Choose:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/1-9", "choose")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// Options tunes a quiz session.
type Options struct {
	Shuffle bool
	Seed    int64
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	quiz    content.Quiz
	theme   theme.Theme
	logger  *zap.Logger
	shuffle bool
	rnd     *rand.Rand
	help    help.Model

	sessionID string
	acc       score.Accumulator
	orders    [][]int
	index     int
	cursor    int
	finished  bool
	errMsg    string

	width  int
	height int
}

// NewModel constructs a quiz model. A zero seed uses the current time.
func NewModel(quiz content.Quiz, th theme.Theme, logger *zap.Logger, opts Options) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := &Model{
		quiz:    quiz,
		theme:   th,
		logger:  logger,
		shuffle: opts.Shuffle,
		rnd:     rand.New(rand.NewSource(seed)),
		help:    help.New(),
	}
	m.restart()
	return m
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
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Restart):
			m.restart()
			return m, nil
		}
		if m.finished {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, keys.Choose):
			m.Choose(m.cursor)
		default:
			if n, err := strconv.Atoi(msg.String()); err == nil {
				m.Choose(n - 1)
			}
		}
		return m, nil
	}
	return m, nil
}

// Choose records the option displayed at position pos for the current
// question. Out of range positions are ignored.
func (m *Model) Choose(pos int) {
	if m.finished || pos < 0 || pos >= len(m.orders[m.index]) {
		return
	}
	question := m.quiz.Questions[m.index]
	option := question.Options[m.orders[m.index][pos]]
	category, err := option.ParsedCategory()
	if err == nil {
		_, err = m.acc.Record(category)
	}
	if err != nil {
		m.errMsg = err.Error()
		m.logger.Error("failed to record answer", zap.String("session", m.sessionID), zap.String("question", question.ID), zap.Error(err))
		return
	}
	m.errMsg = ""
	m.logger.Debug("answer recorded",
		zap.String("session", m.sessionID),
		zap.String("question", question.ID),
		zap.String("category", string(category)))

	m.index++
	m.cursor = 0
	if m.index >= len(m.quiz.Questions) {
		m.finished = true
		board := m.acc.Board()
		m.logger.Info("quiz finished",
			zap.String("session", m.sessionID),
			zap.String("dominant", string(score.Dominant(board))),
			zap.Any("scores", board.Counts()))
	}
}

// Board returns the current tally.
func (m *Model) Board() score.Board {
	return m.acc.Board()
}

// Finished reports whether every question has been answered.
func (m *Model) Finished() bool {
	return m.finished
}

func (m *Model) restart() {
	m.acc.Reset()
	m.sessionID = uuid.NewString()
	m.orders = make([][]int, len(m.quiz.Questions))
	for i, q := range m.quiz.Questions {
		m.orders[i] = optionOrder(m.rnd, len(q.Options), m.shuffle)
	}
	m.index = 0
	m.cursor = 0
	m.finished = false
	m.errMsg = ""
	m.logger.Debug("quiz started", zap.String("session", m.sessionID), zap.Int("questions", len(m.quiz.Questions)))
}

func (m *Model) moveCursor(delta int) {
	n := len(m.orders[m.index])
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.finished {
		body = m.renderResult()
	} else {
		body = m.renderQuestion()
	}
	footer := m.theme.Footer.Render(m.help.View(keys))
	if m.errMsg != "" {
		footer = m.theme.Error.Render(m.errMsg) + "\n" + footer
	}
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	block := lipgloss.NewStyle().Width(contentWidth(m.width)).Render(body)
	bodyHeight := m.height - lipgloss.Height(footer)
	if bodyHeight < 1 {
		return block
	}
	return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, block) + "\n" +
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *Model) renderQuestion() string {
	width := contentWidth(m.width)
	question := m.quiz.Questions[m.index]
	total := len(m.quiz.Questions)

	lines := []string{
		m.theme.Title.Render(m.quiz.Title),
		m.theme.Muted.Render(fmt.Sprintf("Question %d of %d  %s", m.index+1, total, report.Bar(float64(m.index)/float64(total), 16))),
		"",
	}
	for _, l := range wrapText(question.Prompt, width) {
		lines = append(lines, m.theme.Text.Render(l))
	}
	lines = append(lines, "")
	for pos, idx := range m.orders[m.index] {
		prefix := fmt.Sprintf("  %d. ", pos+1)
		style := m.theme.Muted
		if pos == m.cursor {
			prefix = fmt.Sprintf("> %d. ", pos+1)
			style = m.theme.Selected
		}
		indent := strings.Repeat(" ", len(prefix))
		for i, l := range wrapText(question.Options[idx].Label, width-len(prefix)) {
			if i == 0 {
				lines = append(lines, style.Render(prefix+l))
				continue
			}
			lines = append(lines, style.Render(indent+l))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderResult() string {
	width := contentWidth(m.width)
	board := m.acc.Board()
	dominant := score.Dominant(board)
	profile, _ := m.quiz.Profile(dominant)
	title := profile.Title
	if title == "" {
		title = dominant.Title()
	}

	lines := []string{m.theme.Title.Render("You are: " + title), ""}
	for _, l := range wrapText(profile.Summary, width) {
		lines = append(lines, m.theme.Text.Render(l))
	}
	lines = append(lines, "")
	for _, entry := range score.Ranked(board) {
		label := fmt.Sprintf("%-13s", entry.Category.Title())
		bar := report.Bar(board.Share(entry.Category), 20)
		style := m.theme.Muted
		if entry.Category == dominant {
			style = m.theme.Selected
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %s %d", label, bar, entry.Count)))
	}
	for _, section := range profile.Sections {
		lines = append(lines, "")
		for _, l := range report.SectionLines(section) {
			for _, wrapped := range wrapText(l, width) {
				lines = append(lines, m.theme.Text.Render(wrapped))
			}
		}
	}
	return strings.Join(lines, "\n")
}
