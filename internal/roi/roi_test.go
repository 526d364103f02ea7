package roi

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestCalculateWeeklyExample(t *testing.T) {
	res, err := Calculate(Request{
		ManualMinutes:   60,
		Frequency:       Weekly,
		HourlyRate:      50,
		MonthlyToolCost: 20,
		SavingsPercent:  80,
	})
	require.NoError(t, err)

	assert.InDelta(t, 48, res.SavedMinutes, eps)
	assert.InDelta(t, 12, res.AIMinutes, eps)
	assert.InDelta(t, 1, res.OccurrencesPerWeek, eps)
	assert.InDelta(t, 0.8, res.WeeklyHours, eps)
	assert.InDelta(t, 41.6, res.AnnualHours, eps)
	assert.InDelta(t, 2080, res.AnnualValue, eps)
	assert.InDelta(t, 240, res.AnnualToolCost, eps)
	assert.InDelta(t, 1840, res.NetValue, eps)
	assert.Equal(t, BreakEvenWeeks, res.BreakEven.Kind)
	assert.InDelta(t, 6, res.BreakEven.Weeks, eps)
	assert.Equal(t, "6.0 weeks", res.BreakEven.String())
}

func TestCalculateInvariants(t *testing.T) {
	for _, f := range Frequencies() {
		req := Request{ManualMinutes: 45, Frequency: f, HourlyRate: 80, MonthlyToolCost: 30, SavingsPercent: 65}
		res, err := Calculate(req)
		require.NoError(t, err, f)
		perWeek, ok := f.PerWeek()
		require.True(t, ok)
		assert.InDelta(t, res.SavedMinutes*perWeek/60, res.WeeklyHours, eps)
		assert.InDelta(t, res.WeeklyHours*52, res.AnnualHours, eps)
		assert.InDelta(t, req.ManualMinutes, res.SavedMinutes+res.AIMinutes, eps)
		assert.InDelta(t, res.AnnualValue-res.AnnualToolCost, res.NetValue, eps)
	}
}

func TestCalculateIsRepeatable(t *testing.T) {
	req := Request{ManualMinutes: 30, Frequency: Daily, HourlyRate: 40, MonthlyToolCost: 10, SavingsPercent: 50}
	first, err := Calculate(req)
	require.NoError(t, err)
	second, err := Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFrequencyTable(t *testing.T) {
	want := map[Frequency]float64{
		Daily:      5,
		TwiceAWeek: 2.5,
		Weekly:     1,
		Biweekly:   0.5,
		Monthly:    0.25,
	}
	for f, perWeek := range want {
		got, ok := f.PerWeek()
		require.True(t, ok, f)
		assert.Equal(t, perWeek, got, f)
	}
	_, ok := Frequency("hourly").PerWeek()
	assert.False(t, ok)
}

func TestCalculateRejectsInvalidRequests(t *testing.T) {
	valid := Request{ManualMinutes: 60, Frequency: Weekly, HourlyRate: 50, MonthlyToolCost: 20, SavingsPercent: 80}
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero duration", func(r *Request) { r.ManualMinutes = 0 }},
		{"negative duration", func(r *Request) { r.ManualMinutes = -5 }},
		{"zero rate", func(r *Request) { r.HourlyRate = 0 }},
		{"negative tool cost", func(r *Request) { r.MonthlyToolCost = -1 }},
		{"percent above range", func(r *Request) { r.SavingsPercent = 101 }},
		{"percent below range", func(r *Request) { r.SavingsPercent = -1 }},
		{"unknown frequency", func(r *Request) { r.Frequency = "hourly" }},
		{"missing frequency", func(r *Request) { r.Frequency = "" }},
		{"nan rate", func(r *Request) { r.HourlyRate = math.NaN() }},
		{"inf duration", func(r *Request) { r.ManualMinutes = math.Inf(1) }},
		{"overflowing inputs", func(r *Request) {
			*r = Request{ManualMinutes: 1e307, Frequency: Daily, HourlyRate: 1e300, MonthlyToolCost: 1e307, SavingsPercent: 100}
		}},
		{"overflowing value", func(r *Request) { r.HourlyRate = math.MaxFloat64 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			res, err := Calculate(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
			assert.Equal(t, Result{}, res)
		})
	}
}

func TestBreakEvenGuards(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		kind    BreakEvenKind
		display string
	}{
		{
			name:    "no tool cost",
			req:     Request{ManualMinutes: 60, Frequency: Weekly, HourlyRate: 50, SavingsPercent: 80},
			kind:    BreakEvenImmediate,
			display: "immediate",
		},
		{
			name:    "zero savings",
			req:     Request{ManualMinutes: 60, Frequency: Weekly, HourlyRate: 50, MonthlyToolCost: 20, SavingsPercent: 0},
			kind:    BreakEvenNever,
			display: "never",
		},
		{
			name:    "fast payback",
			req:     Request{ManualMinutes: 120, Frequency: Daily, HourlyRate: 100, MonthlyToolCost: 20, SavingsPercent: 90},
			kind:    BreakEvenWeeks,
			display: "under 1 week",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, res.BreakEven.Kind)
			assert.Equal(t, tt.display, res.BreakEven.String())
			assert.False(t, math.IsNaN(res.BreakEven.Weeks))
			assert.False(t, math.IsInf(res.BreakEven.Weeks, 0))
		})
	}
}

func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency(" Daily ")
	require.NoError(t, err)
	assert.Equal(t, Daily, f)
	assert.Equal(t, "Daily", f.Label())

	_, err = ParseFrequency("yearly")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestProject(t *testing.T) {
	res, err := Calculate(Request{ManualMinutes: 60, Frequency: Weekly, HourlyRate: 50, MonthlyToolCost: 20, SavingsPercent: 80})
	require.NoError(t, err)

	p := Project(res, 52)
	require.Len(t, p.Savings, 52)
	require.Len(t, p.Cost, 52)
	assert.InDelta(t, 40, p.Savings[0], eps)
	assert.InDelta(t, res.AnnualValue, p.Savings[51], 1e-6)
	assert.InDelta(t, res.AnnualToolCost, p.Cost[51], 1e-6)

	net := p.Net()
	assert.Less(t, net[4], net[5]+eps)
	assert.InDelta(t, res.NetValue, net[51], 1e-6)

	assert.Empty(t, Project(res, 0).Savings)
}
