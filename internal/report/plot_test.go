package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/agentshift/internal/roi"
)

func TestPlotProjection(t *testing.T) {
	res, err := roi.Calculate(roi.Request{ManualMinutes: 60, Frequency: roi.Weekly, HourlyRate: 50, MonthlyToolCost: 20, SavingsPercent: 80})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	var buf bytes.Buffer
	if err := PlotProjection(&buf, roi.Project(res, 52), 30, 6, false); err != nil {
		t.Fatalf("plot: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Cumulative value over 52 weeks (net $1,840)") {
		t.Fatalf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Savings (solid)") || !strings.Contains(out, "Tool cost (dashed)") {
		t.Fatalf("missing legend:\n%s", out)
	}
	if !strings.Contains(out, "$2,080") {
		t.Fatalf("expected top axis label at annual value:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1+6+1 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes when writing to a buffer")
	}
}

func TestPlotProjectionWithoutCost(t *testing.T) {
	res, err := roi.Calculate(roi.Request{ManualMinutes: 30, Frequency: roi.Daily, HourlyRate: 40, SavingsPercent: 50})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	var buf bytes.Buffer
	if err := PlotProjection(&buf, roi.Project(res, 12), 20, 4, false); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if strings.Contains(buf.String(), "Tool cost") {
		t.Fatalf("zero cost line should be omitted:\n%s", buf.String())
	}
}

func TestPlotEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotProjection(&buf, roi.Projection{}, 20, 4, false); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty projection")
	}
}

func TestResample(t *testing.T) {
	got := resample([]float64{0, 10}, 3)
	if got[0] != 0 || got[1] != 5 || got[2] != 10 {
		t.Fatalf("unexpected interpolation %v", got)
	}
	got = resample([]float64{1, 3, 5, 7}, 2)
	if got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected averaging %v", got)
	}
}
