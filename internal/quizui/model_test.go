package quizui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/score"
	"github.com/verte-zerg/agentshift/internal/theme"
)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	b, err := content.Load()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return NewModel(b.Quiz, theme.New(""), nil, opts)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestQuizEightAnswers(t *testing.T) {
	m := newTestModel(t, Options{})
	// Options are listed doer, delegator, orchestrator.
	for _, k := range []string{"3", "2", "3", "1", "3", "2", "3", "3"} {
		m.Update(keyRunes(k))
	}
	if !m.Finished() {
		t.Fatalf("expected quiz to be finished")
	}
	board := m.Board()
	if board.Count(score.Doer) != 1 || board.Count(score.Delegator) != 2 || board.Count(score.Orchestrator) != 5 {
		t.Fatalf("unexpected board %s", board)
	}
	if got := score.Dominant(board); got != score.Orchestrator {
		t.Fatalf("expected orchestrator, got %s", got)
	}
	view := m.View()
	if !strings.Contains(view, "The Orchestrator") {
		t.Fatalf("result view missing profile title:\n%s", view)
	}
}

func TestQuizCursorSelection(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Board().Count(score.Doer); got != 1 {
		t.Fatalf("cursor should wrap back to the first option, board %s", m.Board())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Board().Count(score.Orchestrator); got != 1 {
		t.Fatalf("up from the first option should select the last, board %s", m.Board())
	}
}

func TestQuizIgnoresOutOfRangeKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(keyRunes("9"))
	m.Update(keyRunes("0"))
	if total := m.Board().Total(); total != 0 {
		t.Fatalf("expected no answers, got %d", total)
	}
}

func TestQuizRestartResetsBoard(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(keyRunes("1"))
	m.Update(keyRunes("2"))
	m.Update(keyRunes("r"))
	if total := m.Board().Total(); total != 0 {
		t.Fatalf("expected empty board after restart, got %d", total)
	}
	if !strings.Contains(m.View(), "Question 1 of 8") {
		t.Fatalf("expected first question after restart")
	}
}

func TestQuizNoAnswersAfterFinish(t *testing.T) {
	m := newTestModel(t, Options{})
	for i := 0; i < 8; i++ {
		m.Update(keyRunes("1"))
	}
	m.Update(keyRunes("2"))
	if total := m.Board().Total(); total != 8 {
		t.Fatalf("expected 8 answers, got %d", total)
	}
}

func TestQuizShuffleKeepsCategories(t *testing.T) {
	m := newTestModel(t, Options{Shuffle: true, Seed: 42})
	for i := 0; i < 8; i++ {
		m.Update(keyRunes("1"))
	}
	if total := m.Board().Total(); total != 8 {
		t.Fatalf("expected 8 answers, got %d", total)
	}
	for _, order := range m.orders {
		seen := map[int]bool{}
		for _, idx := range order {
			seen[idx] = true
		}
		if len(seen) != len(order) {
			t.Fatalf("shuffled order is not a permutation: %v", order)
		}
	}
}

func TestQuizQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
