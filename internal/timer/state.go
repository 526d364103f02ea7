// Package timer maps elapsed time onto staged animation phases.
package timer

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid timer config")

// DefaultInterval is the tick interval used when a config leaves it unset.
const DefaultInterval = 50 * time.Millisecond

// Status is the lifecycle state of a timer.
type Status int

const (
	Idle Status = iota
	Running
	Complete
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Phase is a named interval that begins At into the run.
type Phase struct {
	Name string
	At   time.Duration
}

// PhasesAt builds phases whose boundaries are fractions of total.
func PhasesAt(total time.Duration, names []string, fractions []float64) ([]Phase, error) {
	if len(names) != len(fractions) {
		return nil, fmt.Errorf("%w: %d phase names for %d boundaries", ErrInvalidConfig, len(names), len(fractions))
	}
	phases := make([]Phase, 0, len(names))
	for i, name := range names {
		phases = append(phases, Phase{Name: name, At: time.Duration(fractions[i] * float64(total))})
	}
	return phases, nil
}

// Config describes a timer run.
type Config struct {
	Total    time.Duration
	Interval time.Duration
	Phases   []Phase
}

// Validate checks that phases are ordered and fall inside the run.
func (c Config) Validate() error {
	if c.Total <= 0 {
		return fmt.Errorf("%w: total must be > 0", ErrInvalidConfig)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: interval must be >= 0", ErrInvalidConfig)
	}
	for i, p := range c.Phases {
		if p.At < 0 || p.At >= c.Total {
			return fmt.Errorf("%w: phase %q starts outside the run", ErrInvalidConfig, p.Name)
		}
		if i > 0 && p.At <= c.Phases[i-1].At {
			return fmt.Errorf("%w: phase %q does not start after %q", ErrInvalidConfig, p.Name, c.Phases[i-1].Name)
		}
	}
	return nil
}

func (c Config) interval() time.Duration {
	if c.Interval <= 0 {
		return DefaultInterval
	}
	return c.Interval
}

// State is a snapshot of a timer.
type State struct {
	Status        Status
	Elapsed       time.Duration
	Total         time.Duration
	Phase         int
	PhaseName     string
	Progress      float64
	PhaseProgress float64
}

// Compute derives the timer state for an elapsed duration. Phase is -1 until
// the first boundary is reached.
func Compute(elapsed time.Duration, cfg Config) State {
	if elapsed < 0 {
		elapsed = 0
	}
	st := State{
		Status:  Running,
		Elapsed: elapsed,
		Total:   cfg.Total,
		Phase:   -1,
	}
	if cfg.Total <= 0 || elapsed >= cfg.Total {
		st.Status = Complete
		st.Progress = 1
		if len(cfg.Phases) > 0 {
			st.Phase = len(cfg.Phases) - 1
			st.PhaseName = cfg.Phases[st.Phase].Name
			st.PhaseProgress = 1
		}
		return st
	}
	st.Progress = clamp(float64(elapsed) / float64(cfg.Total))
	st.Phase = phaseAt(elapsed, cfg.Phases)
	if st.Phase >= 0 {
		st.PhaseName = cfg.Phases[st.Phase].Name
		st.PhaseProgress = phaseProgress(elapsed, st.Phase, cfg)
	}
	return st
}

func phaseAt(elapsed time.Duration, phases []Phase) int {
	idx := -1
	for i, p := range phases {
		if elapsed < p.At {
			break
		}
		idx = i
	}
	return idx
}

func phaseProgress(elapsed time.Duration, idx int, cfg Config) float64 {
	start := cfg.Phases[idx].At
	end := cfg.Total
	if idx+1 < len(cfg.Phases) {
		end = cfg.Phases[idx+1].At
	}
	span := end - start
	if span <= 0 {
		return 1
	}
	return clamp(float64(elapsed-start) / float64(span))
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
