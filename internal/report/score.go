package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/score"
)

const barWidth = 24

// Bar renders a horizontal bar for a fraction in [0,1].
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(math.Round(fraction * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderScore prints the dominant archetype, the tally and its profile.
func RenderScore(w io.Writer, board score.Board, profile content.Profile) error {
	dominant := score.Dominant(board)
	title := profile.Title
	if title == "" {
		title = dominant.Title()
	}
	if _, err := fmt.Fprintf(w, "You are: %s\n", title); err != nil {
		return err
	}
	if profile.Summary != "" {
		if _, err := fmt.Fprintln(w, profile.Summary); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	rows := make([][]string, 0, len(score.Categories()))
	for _, c := range score.Categories() {
		rows = append(rows, []string{
			c.Title(),
			Bar(board.Share(c), barWidth),
			fmt.Sprintf("%d/%d", board.Count(c), board.Total()),
		})
	}
	for _, line := range formatTable(nil, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderSections(w, profile.Sections)
}
