package roi

import (
	"fmt"
	"math"
)

// BreakEvenKind tags the break-even outcome.
type BreakEvenKind int

const (
	// BreakEvenImmediate means there is no tool cost to recover.
	BreakEvenImmediate BreakEvenKind = iota
	// BreakEvenWeeks means the cost is recovered after Weeks weeks.
	BreakEvenWeeks
	// BreakEvenNever means nothing is saved, so the cost is never recovered.
	BreakEvenNever
)

// BreakEven is the time needed for savings to offset the annual tool cost.
type BreakEven struct {
	Kind  BreakEvenKind
	Weeks float64
}

func breakEven(annualToolCost, weeklyValue float64) BreakEven {
	if annualToolCost <= 0 {
		return BreakEven{Kind: BreakEvenImmediate}
	}
	if weeklyValue <= 0 {
		return BreakEven{Kind: BreakEvenNever}
	}
	weeks := annualToolCost / weeklyValue
	if math.IsNaN(weeks) || math.IsInf(weeks, 0) {
		return BreakEven{Kind: BreakEvenNever}
	}
	return BreakEven{Kind: BreakEvenWeeks, Weeks: weeks}
}

// String renders the break-even for display.
func (b BreakEven) String() string {
	switch b.Kind {
	case BreakEvenImmediate:
		return "immediate"
	case BreakEvenNever:
		return "never"
	case BreakEvenWeeks:
		if b.Weeks < 1 {
			return "under 1 week"
		}
		return fmt.Sprintf("%.1f weeks", b.Weeks)
	default:
		return "unknown"
	}
}
