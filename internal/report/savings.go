package report

import (
	"fmt"
	"io"

	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/roi"
)

// RenderSavings prints the inputs and projection for a calculation.
func RenderSavings(w io.Writer, req roi.Request, res roi.Result) error {
	rows := [][]string{
		{"Manual time per task", Minutes(req.ManualMinutes)},
		{"With an agent", Minutes(res.AIMinutes)},
		{"Saved per task", Minutes(res.SavedMinutes)},
		{"Frequency", fmt.Sprintf("%s (%.2g/week)", req.Frequency.Label(), res.OccurrencesPerWeek)},
		{"Weekly time saved", Hours(res.WeeklyHours)},
		{"Annual time saved", Hours(res.AnnualHours)},
		{"Annual value", Money(res.AnnualValue)},
		{"Annual tool cost", Money(res.AnnualToolCost)},
		{"Net annual value", Money(res.NetValue)},
		{"Break-even", res.BreakEven.String()},
	}
	if _, err := fmt.Fprintln(w, "Time savings"); err != nil {
		return err
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderPresets lists the task presets as a table.
func RenderPresets(w io.Writer, presets []content.Preset) error {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{p.ID, p.Label, fmt.Sprintf("%.0f%%", p.Savings)})
	}
	for _, line := range formatTable([]string{"Task", "Description", "Savings"}, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
