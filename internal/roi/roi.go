// Package roi projects the time and money saved by handing recurring work to
// AI agents.
package roi

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	weeksPerYear   = 52
	monthsPerYear  = 12
	minutesPerHour = 60
)

// ErrInvalidRequest is returned when a request is incomplete or out of range.
var ErrInvalidRequest = errors.New("invalid savings request")

// Frequency describes how often a task recurs.
type Frequency string

// Supported recurrence frequencies.
const (
	Daily      Frequency = "daily"
	TwiceAWeek Frequency = "2-3x-week"
	Weekly     Frequency = "weekly"
	Biweekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
)

type frequencyInfo struct {
	freq    Frequency
	label   string
	perWeek float64
}

var frequencyTable = [...]frequencyInfo{
	{freq: Daily, label: "Daily", perWeek: 5},
	{freq: TwiceAWeek, label: "2-3x per week", perWeek: 2.5},
	{freq: Weekly, label: "Weekly", perWeek: 1},
	{freq: Biweekly, label: "Every two weeks", perWeek: 0.5},
	{freq: Monthly, label: "Monthly", perWeek: 0.25},
}

// Frequencies returns the supported frequencies, most frequent first.
func Frequencies() []Frequency {
	out := make([]Frequency, 0, len(frequencyTable))
	for _, info := range frequencyTable {
		out = append(out, info.freq)
	}
	return out
}

// ParseFrequency converts user input into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := f.PerWeek(); !ok {
		return "", fmt.Errorf("%w: unknown frequency %q", ErrInvalidRequest, s)
	}
	return f, nil
}

// PerWeek returns the number of occurrences per week.
func (f Frequency) PerWeek() (float64, bool) {
	for _, info := range frequencyTable {
		if info.freq == f {
			return info.perWeek, true
		}
	}
	return 0, false
}

// Label returns a human readable name.
func (f Frequency) Label() string {
	for _, info := range frequencyTable {
		if info.freq == f {
			return info.label
		}
	}
	return string(f)
}

// Request holds the calculator inputs.
type Request struct {
	ManualMinutes   float64
	Frequency       Frequency
	HourlyRate      float64
	MonthlyToolCost float64
	SavingsPercent  float64
}

// Validate reports whether the request can be calculated.
func (r Request) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"manual minutes", r.ManualMinutes},
		{"hourly rate", r.HourlyRate},
		{"monthly tool cost", r.MonthlyToolCost},
		{"savings percent", r.SavingsPercent},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidRequest, f.name)
		}
	}
	if r.ManualMinutes <= 0 {
		return fmt.Errorf("%w: manual minutes must be > 0", ErrInvalidRequest)
	}
	if r.HourlyRate <= 0 {
		return fmt.Errorf("%w: hourly rate must be > 0", ErrInvalidRequest)
	}
	if r.MonthlyToolCost < 0 {
		return fmt.Errorf("%w: monthly tool cost must be >= 0", ErrInvalidRequest)
	}
	if r.SavingsPercent < 0 || r.SavingsPercent > 100 {
		return fmt.Errorf("%w: savings percent must be between 0 and 100", ErrInvalidRequest)
	}
	if _, ok := r.Frequency.PerWeek(); !ok {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRequest, r.Frequency)
	}
	return nil
}

// Result is the savings projection for a request.
type Result struct {
	AIMinutes          float64
	SavedMinutes       float64
	OccurrencesPerWeek float64
	WeeklyHours        float64
	WeeklyValue        float64
	AnnualHours        float64
	AnnualValue        float64
	AnnualToolCost     float64
	NetValue           float64
	BreakEven          BreakEven
}

// Calculate converts a request into a savings projection. Invalid requests
// produce no result.
func Calculate(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	perWeek, _ := req.Frequency.PerWeek()

	// Equal to manual - manual*(1-pct/100), without the rounding error.
	saved := req.ManualMinutes * req.SavingsPercent / 100
	weeklyHours := saved * perWeek / minutesPerHour
	annualHours := weeklyHours * weeksPerYear
	annualValue := annualHours * req.HourlyRate
	annualToolCost := req.MonthlyToolCost * monthsPerYear
	weeklyValue := weeklyHours * req.HourlyRate

	res := Result{
		AIMinutes:          req.ManualMinutes - saved,
		SavedMinutes:       saved,
		OccurrencesPerWeek: perWeek,
		WeeklyHours:        weeklyHours,
		WeeklyValue:        weeklyValue,
		AnnualHours:        annualHours,
		AnnualValue:        annualValue,
		AnnualToolCost:     annualToolCost,
		NetValue:           annualValue - annualToolCost,
		BreakEven:          breakEven(annualToolCost, weeklyValue),
	}
	if !res.finite() {
		return Result{}, fmt.Errorf("%w: inputs are too large to calculate", ErrInvalidRequest)
	}
	return res, nil
}

func (r Result) finite() bool {
	for _, v := range []float64{
		r.AIMinutes, r.SavedMinutes, r.OccurrencesPerWeek,
		r.WeeklyHours, r.WeeklyValue, r.AnnualHours,
		r.AnnualValue, r.AnnualToolCost, r.NetValue, r.BreakEven.Weeks,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
