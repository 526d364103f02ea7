package content

import (
	"fmt"
	"time"

	"github.com/verte-zerg/agentshift/internal/score"
)

// Validate checks every part of the bundle.
func (b *Bundle) Validate() error {
	if err := b.Quiz.Validate(); err != nil {
		return err
	}
	if len(b.Presets) == 0 {
		return fmt.Errorf("%w: no task presets", ErrInvalidContent)
	}
	seen := map[string]struct{}{}
	for _, p := range b.Presets {
		if p.ID == "" {
			return fmt.Errorf("%w: preset %q has no id", ErrInvalidContent, p.Label)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate preset %q", ErrInvalidContent, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Savings < 0 || p.Savings > 100 {
			return fmt.Errorf("%w: preset %q savings %.1f outside 0-100", ErrInvalidContent, p.ID, p.Savings)
		}
	}
	for _, d := range b.Demos {
		if err := validateDemo(d); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the question bank and its profiles.
func (q Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: quiz has no questions", ErrInvalidContent)
	}
	for i, question := range q.Questions {
		if question.Prompt == "" {
			return fmt.Errorf("%w: question %d has no prompt", ErrInvalidContent, i+1)
		}
		if len(question.Options) < 2 {
			return fmt.Errorf("%w: question %q needs at least two options", ErrInvalidContent, question.ID)
		}
		for _, opt := range question.Options {
			if _, err := opt.ParsedCategory(); err != nil {
				return fmt.Errorf("%w: question %q: %w", ErrInvalidContent, question.ID, err)
			}
		}
	}
	for _, c := range score.Categories() {
		p, ok := q.Profile(c)
		if !ok {
			return fmt.Errorf("%w: missing profile for %s", ErrInvalidContent, c)
		}
		for _, s := range p.Sections {
			if s.Kind == "" {
				return fmt.Errorf("%w: profile %s has a section without kind", ErrInvalidContent, c)
			}
		}
	}
	return nil
}

func validateDemo(d Demo) error {
	if d.ID == "" {
		return fmt.Errorf("%w: demo %q has no id", ErrInvalidContent, d.Title)
	}
	if len(d.Lanes) == 0 {
		return fmt.Errorf("%w: demo %q has no lanes", ErrInvalidContent, d.ID)
	}
	for _, lane := range d.Lanes {
		if time.Duration(lane.Duration) <= 0 {
			return fmt.Errorf("%w: demo %q lane %q needs a positive duration", ErrInvalidContent, d.ID, lane.Name)
		}
		prev := -1.0
		for _, p := range lane.Phases {
			if p.At < 0 || p.At >= 1 {
				return fmt.Errorf("%w: demo %q phase %q must start in [0,1)", ErrInvalidContent, d.ID, p.Name)
			}
			if p.At <= prev {
				return fmt.Errorf("%w: demo %q phase %q is out of order", ErrInvalidContent, d.ID, p.Name)
			}
			prev = p.At
		}
	}
	return nil
}
