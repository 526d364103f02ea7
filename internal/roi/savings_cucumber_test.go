//go:build cucumber

package roi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
)

// TestSavingsScenarios runs the calculator feature scenarios.
func TestSavingsScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "savings",
		ScenarioInitializer: InitializeSavingsScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("testdata", "savings.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeSavingsScenario wires steps for calculator scenarios.
func InitializeSavingsScenario(ctx *godog.ScenarioContext) {
	state := &savingsState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = savingsState{}
		return ctx, nil
	})

	ctx.Step(`^a task that takes (\d+(?:\.\d+)?) minutes manually$`, state.givenMinutes)
	ctx.Step(`^it happens "([^"]*)"$`, state.givenFrequency)
	ctx.Step(`^the hourly rate is (\d+(?:\.\d+)?) and the tool costs (\d+(?:\.\d+)?) per month$`, state.givenRates)
	ctx.Step(`^an agent saves (\d+(?:\.\d+)?) percent$`, state.givenSavings)
	ctx.Step(`^I calculate the savings$`, state.whenCalculate)
	ctx.Step(`^the agent takes (\d+(?:\.\d+)?) minutes$`, state.thenAIMinutes)
	ctx.Step(`^annual time saved is (\d+(?:\.\d+)?) hours$`, state.thenAnnualHours)
	ctx.Step(`^annual value is (\d+(?:\.\d+)?)$`, state.thenAnnualValue)
	ctx.Step(`^net value is (-?\d+(?:\.\d+)?)$`, state.thenNetValue)
	ctx.Step(`^break-even is "([^"]*)"$`, state.thenBreakEven)
	ctx.Step(`^the request is rejected$`, state.thenRejected)
}

type savingsState struct {
	req Request
	res Result
	err error
}

func (s *savingsState) givenMinutes(v float64) error {
	s.req.ManualMinutes = v
	return nil
}

func (s *savingsState) givenFrequency(f string) error {
	s.req.Frequency = Frequency(f)
	return nil
}

func (s *savingsState) givenRates(rate, cost float64) error {
	s.req.HourlyRate = rate
	s.req.MonthlyToolCost = cost
	return nil
}

func (s *savingsState) givenSavings(pct float64) error {
	s.req.SavingsPercent = pct
	return nil
}

func (s *savingsState) whenCalculate() error {
	s.res, s.err = Calculate(s.req)
	return nil
}

func approx(name string, got, want float64) error {
	if math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("%s: expected %v, got %v", name, want, got)
	}
	return nil
}

func (s *savingsState) thenAIMinutes(v float64) error {
	return approx("ai minutes", s.res.AIMinutes, v)
}

func (s *savingsState) thenAnnualHours(v float64) error {
	return approx("annual hours", s.res.AnnualHours, v)
}

func (s *savingsState) thenAnnualValue(v float64) error {
	return approx("annual value", s.res.AnnualValue, v)
}

func (s *savingsState) thenNetValue(v float64) error {
	return approx("net value", s.res.NetValue, v)
}

func (s *savingsState) thenBreakEven(want string) error {
	if s.err != nil {
		return s.err
	}
	if got := s.res.BreakEven.String(); got != want {
		return fmt.Errorf("expected break-even %q, got %q", want, got)
	}
	return nil
}

func (s *savingsState) thenRejected() error {
	if !errors.Is(s.err, ErrInvalidRequest) {
		return fmt.Errorf("expected ErrInvalidRequest, got %v", s.err)
	}
	return nil
}
