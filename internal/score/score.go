// Package score tallies quiz answers into archetype counts.
package score

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category is one of the fixed assessment archetypes.
type Category string

// Archetypes in evaluation order. Earlier categories win ties.
const (
	Doer         Category = "doer"
	Delegator    Category = "delegator"
	Orchestrator Category = "orchestrator"
)

// ErrUnknownCategory is returned for labels outside the closed set.
var ErrUnknownCategory = errors.New("unknown category")

var order = [...]Category{Doer, Delegator, Orchestrator}

// Categories returns the closed category set in evaluation order.
func Categories() []Category {
	out := make([]Category, len(order))
	copy(out, order[:])
	return out
}

// ParseCategory converts a label into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := indexOf(c); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Title returns the display name of the category.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

func indexOf(c Category) (int, bool) {
	for i, candidate := range order {
		if candidate == c {
			return i, true
		}
	}
	return -1, false
}

// Board holds per-category answer counts.
type Board struct {
	counts [len(order)]int
}

// Count returns the tally for a category; unknown categories count zero.
func (b Board) Count(c Category) int {
	idx, ok := indexOf(c)
	if !ok {
		return 0
	}
	return b.counts[idx]
}

// Total returns the number of answers recorded.
func (b Board) Total() int {
	total := 0
	for _, n := range b.counts {
		total += n
	}
	return total
}

// Share returns the fraction of answers that went to c.
func (b Board) Share(c Category) float64 {
	total := b.Total()
	if total == 0 {
		return 0
	}
	return float64(b.Count(c)) / float64(total)
}

// Counts returns a copy of the tally keyed by category.
func (b Board) Counts() map[Category]int {
	out := make(map[Category]int, len(order))
	for i, c := range order {
		out[c] = b.counts[i]
	}
	return out
}

// String formats the board in evaluation order.
func (b Board) String() string {
	parts := make([]string, 0, len(order))
	for i, c := range order {
		parts = append(parts, fmt.Sprintf("%s:%d", c, b.counts[i]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Accumulator records answers for a single quiz session.
type Accumulator struct {
	board Board
}

// Record increments the counter for c and returns the updated tally.
func (a *Accumulator) Record(c Category) (Board, error) {
	idx, ok := indexOf(c)
	if !ok {
		return a.board, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	a.board.counts[idx]++
	return a.board, nil
}

// Board returns a snapshot of the current tally.
func (a *Accumulator) Board() Board {
	return a.board
}

// Reset clears all counts.
func (a *Accumulator) Reset() {
	a.board = Board{}
}

// Dominant returns the category with the highest count. Ties resolve to the
// category that comes first in evaluation order.
func Dominant(b Board) Category {
	best := 0
	for i := 1; i < len(order); i++ {
		if b.counts[i] > b.counts[best] {
			best = i
		}
	}
	return order[best]
}

// Entry pairs a category with its count.
type Entry struct {
	Category Category
	Count    int
}

// Ranked returns categories sorted by count, highest first.
func Ranked(b Board) []Entry {
	entries := make([]Entry, 0, len(order))
	for i, c := range order {
		entries = append(entries, Entry{Category: c, Count: b.counts[i]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}
