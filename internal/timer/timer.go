package timer

import (
	"context"
	"sync"
	"time"
)

// Clock supplies monotonic timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock. time.Now carries a monotonic reading, so
// differences between its values are immune to wall clock jumps.
var SystemClock Clock = systemClock{}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces the clock used to measure elapsed time.
func WithClock(c Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// OnComplete registers a callback fired once per run when the timer reaches
// its total duration.
func OnComplete(fn func(State)) Option {
	return func(t *Timer) {
		t.onComplete = fn
	}
}

// Timer drives a staged run. Elapsed time is always measured against the
// clock rather than by counting ticks.
type Timer struct {
	mu         sync.Mutex
	cfg        Config
	clock      Clock
	onComplete func(State)

	gen       uint64
	startedAt time.Time
	state     State
	signaled  bool
	stop      chan struct{}
}

// New returns an idle timer.
func New(cfg Config, opts ...Option) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Timer{cfg: cfg, clock: SystemClock}
	for _, opt := range opts {
		opt(t)
	}
	t.state = t.idleState()
	return t, nil
}

// Config returns the timer configuration.
func (t *Timer) Config() Config {
	return t.cfg
}

// Interval returns the tick interval.
func (t *Timer) Interval() time.Duration {
	return t.cfg.interval()
}

// Start begins a new run and returns its generation. Starting a running
// timer restarts it.
func (t *Timer) Start() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeStopLocked()
	t.gen++
	t.startedAt = t.clock.Now()
	t.signaled = false
	t.stop = make(chan struct{})
	t.state = Compute(0, t.cfg)
	return t.gen
}

// Generation returns the current run generation.
func (t *Timer) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Tick recomputes the state for run gen. It returns false without touching
// the state when gen is stale or the timer is not running.
func (t *Timer) Tick(gen uint64) (State, bool) {
	t.mu.Lock()
	if gen != t.gen || t.state.Status != Running {
		st := t.state
		t.mu.Unlock()
		return st, false
	}
	next := Compute(t.clock.Now().Sub(t.startedAt), t.cfg)
	if next.Elapsed < t.state.Elapsed {
		next = Compute(t.state.Elapsed, t.cfg)
	}
	if next.Phase < t.state.Phase {
		next.Phase = t.state.Phase
		next.PhaseName = t.state.PhaseName
		next.PhaseProgress = t.state.PhaseProgress
	}
	t.state = next

	var notify func(State)
	if next.Status == Complete && !t.signaled {
		t.signaled = true
		t.closeStopLocked()
		notify = t.onComplete
	}
	t.mu.Unlock()

	if notify != nil {
		notify(next)
	}
	return next, true
}

// Reset returns the timer to Idle and invalidates pending ticks.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeStopLocked()
	t.gen++
	t.startedAt = time.Time{}
	t.signaled = false
	t.state = t.idleState()
}

// State returns the latest snapshot.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Run starts the timer and ticks it every interval until it completes, is
// reset, or ctx is done. onTick may be nil. The ticker is stopped before Run
// returns. Cancelling ctx resets the timer to Idle.
func (t *Timer) Run(ctx context.Context, onTick func(State)) State {
	gen := t.Start()
	t.mu.Lock()
	stop := t.stop
	t.mu.Unlock()

	ticker := time.NewTicker(t.cfg.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return t.resetRun(gen)
		case <-stop:
			return t.State()
		case <-ticker.C:
			st, ok := t.Tick(gen)
			if !ok {
				return st
			}
			if onTick != nil {
				onTick(st)
			}
			if st.Status == Complete {
				return st
			}
		}
	}
}

// resetRun resets the timer unless a newer run has already replaced gen.
func (t *Timer) resetRun(gen uint64) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen == gen {
		t.closeStopLocked()
		t.gen++
		t.startedAt = time.Time{}
		t.signaled = false
		t.state = t.idleState()
	}
	return t.state
}

func (t *Timer) idleState() State {
	return State{Status: Idle, Total: t.cfg.Total, Phase: -1}
}

func (t *Timer) closeStopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
