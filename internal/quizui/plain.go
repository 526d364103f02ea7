package quizui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/score"
)

// ErrAnswers is returned when a scripted answer list does not fit the quiz.
var ErrAnswers = errors.New("invalid answers")

// ScoreAnswers tallies answers given as 1-based option numbers, one per
// question in bank order.
func ScoreAnswers(quiz content.Quiz, answers []int) (score.Board, error) {
	if len(answers) != len(quiz.Questions) {
		return score.Board{}, fmt.Errorf("%w: got %d answers for %d questions", ErrAnswers, len(answers), len(quiz.Questions))
	}
	var acc score.Accumulator
	for i, answer := range answers {
		q := quiz.Questions[i]
		if answer < 1 || answer > len(q.Options) {
			return score.Board{}, fmt.Errorf("%w: question %d has no option %d", ErrAnswers, i+1, answer)
		}
		category, err := q.Options[answer-1].ParsedCategory()
		if err != nil {
			return score.Board{}, err
		}
		if _, err := acc.Record(category); err != nil {
			return score.Board{}, err
		}
	}
	return acc.Board(), nil
}

// ParseAnswers parses a comma separated list such as "3,2,3".
func ParseAnswers(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	answers := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrAnswers, part)
		}
		answers = append(answers, n)
	}
	return answers, nil
}

// RunPlain asks each question on w and reads numbered answers from r.
// Invalid lines are reported and asked again.
func RunPlain(r io.Reader, w io.Writer, quiz content.Quiz) (score.Board, error) {
	scanner := bufio.NewScanner(r)
	var acc score.Accumulator
	for i, q := range quiz.Questions {
		if _, err := fmt.Fprintf(w, "\n%d/%d  %s\n", i+1, len(quiz.Questions), q.Prompt); err != nil {
			return score.Board{}, err
		}
		for j, opt := range q.Options {
			if _, err := fmt.Fprintf(w, "  %d) %s\n", j+1, opt.Label); err != nil {
				return score.Board{}, err
			}
		}
		for {
			if _, err := fmt.Fprintf(w, "> "); err != nil {
				return score.Board{}, err
			}
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return score.Board{}, err
				}
				return score.Board{}, io.ErrUnexpectedEOF
			}
			n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil || n < 1 || n > len(q.Options) {
				if _, err := fmt.Fprintf(w, "choose 1-%d\n", len(q.Options)); err != nil {
					return score.Board{}, err
				}
				continue
			}
			category, err := q.Options[n-1].ParsedCategory()
			if err != nil {
				return score.Board{}, err
			}
			if _, err := acc.Record(category); err != nil {
				return score.Board{}, err
			}
			break
		}
	}
	return acc.Board(), nil
}
