package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func threePhaseConfig(t *testing.T) Config {
	t.Helper()
	phases, err := PhasesAt(time.Second, []string{"plan", "delegate", "review"}, []float64{0, 0.3, 0.8})
	require.NoError(t, err)
	return Config{Total: time.Second, Interval: 50 * time.Millisecond, Phases: phases}
}

func TestComputePhases(t *testing.T) {
	cfg := threePhaseConfig(t)
	tests := []struct {
		elapsed  time.Duration
		phase    int
		name     string
		progress float64
	}{
		{0, 0, "plan", 0},
		{150 * time.Millisecond, 0, "plan", 0.15},
		{300 * time.Millisecond, 1, "delegate", 0.3},
		{799 * time.Millisecond, 1, "delegate", 0.799},
		{800 * time.Millisecond, 2, "review", 0.8},
		{2 * time.Second, 2, "review", 1},
	}
	for _, tt := range tests {
		st := Compute(tt.elapsed, cfg)
		assert.Equal(t, tt.phase, st.Phase, tt.elapsed)
		assert.Equal(t, tt.name, st.PhaseName, tt.elapsed)
		assert.InDelta(t, tt.progress, st.Progress, 1e-9, tt.elapsed)
		assert.GreaterOrEqual(t, st.PhaseProgress, 0.0)
		assert.LessOrEqual(t, st.PhaseProgress, 1.0)
	}
	assert.Equal(t, Complete, Compute(time.Second, cfg).Status)
	assert.Equal(t, Running, Compute(999*time.Millisecond, cfg).Status)
}

func TestComputeBeforeFirstPhase(t *testing.T) {
	cfg := Config{Total: time.Second, Phases: []Phase{{Name: "late", At: 500 * time.Millisecond}}}
	st := Compute(100*time.Millisecond, cfg)
	assert.Equal(t, -1, st.Phase)
	assert.Empty(t, st.PhaseName)
	assert.Zero(t, st.PhaseProgress)

	st = Compute(750*time.Millisecond, cfg)
	assert.InDelta(t, 0.5, st.PhaseProgress, 1e-9)
}

func TestComputeClampsNegativeElapsed(t *testing.T) {
	st := Compute(-time.Second, threePhaseConfig(t))
	assert.Zero(t, st.Elapsed)
	assert.Zero(t, st.Progress)
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, Config{Total: time.Second, Phases: []Phase{{Name: "a", At: time.Second}}}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, Config{Total: time.Second, Phases: []Phase{{Name: "a", At: 500 * time.Millisecond}, {Name: "b", At: 500 * time.Millisecond}}}.Validate(), ErrInvalidConfig)
	assert.NoError(t, threePhaseConfig(t).Validate())

	_, err := PhasesAt(time.Second, []string{"a"}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTimerCompletesExactlyOnce(t *testing.T) {
	clock := newFakeClock()
	completions := 0
	tm, err := New(threePhaseConfig(t), WithClock(clock), OnComplete(func(State) { completions++ }))
	require.NoError(t, err)
	assert.Equal(t, Idle, tm.State().Status)

	gen := tm.Start()
	for i := 0; i < 19; i++ {
		clock.Advance(50 * time.Millisecond)
		st, ok := tm.Tick(gen)
		require.True(t, ok)
		assert.Equal(t, Running, st.Status)
	}
	clock.Advance(50 * time.Millisecond)
	st, ok := tm.Tick(gen)
	require.True(t, ok)
	assert.Equal(t, Complete, st.Status)
	assert.Equal(t, 1.0, st.Progress)

	for i := 0; i < 3; i++ {
		clock.Advance(50 * time.Millisecond)
		st, ok = tm.Tick(gen)
		assert.False(t, ok)
		assert.Equal(t, Complete, st.Status)
	}
	assert.Equal(t, 1, completions)
}

func TestTimerElapsedFollowsClockNotTicks(t *testing.T) {
	clock := newFakeClock()
	tm, err := New(threePhaseConfig(t), WithClock(clock))
	require.NoError(t, err)
	gen := tm.Start()

	clock.Advance(420 * time.Millisecond)
	st, ok := tm.Tick(gen)
	require.True(t, ok)
	assert.Equal(t, 420*time.Millisecond, st.Elapsed)
	assert.Equal(t, "delegate", st.PhaseName)
}

func TestTimerPhaseNeverMovesBackwards(t *testing.T) {
	clock := newFakeClock()
	tm, err := New(threePhaseConfig(t), WithClock(clock))
	require.NoError(t, err)
	gen := tm.Start()

	clock.Advance(850 * time.Millisecond)
	st, ok := tm.Tick(gen)
	require.True(t, ok)
	require.Equal(t, 2, st.Phase)

	clock.Advance(-600 * time.Millisecond)
	st, ok = tm.Tick(gen)
	require.True(t, ok)
	assert.Equal(t, 2, st.Phase)
	assert.Equal(t, 850*time.Millisecond, st.Elapsed)
}

func TestTimerResetDropsStaleTicks(t *testing.T) {
	clock := newFakeClock()
	completions := 0
	tm, err := New(threePhaseConfig(t), WithClock(clock), OnComplete(func(State) { completions++ }))
	require.NoError(t, err)

	gen := tm.Start()
	clock.Advance(400 * time.Millisecond)
	_, ok := tm.Tick(gen)
	require.True(t, ok)

	tm.Reset()
	idle := State{Status: Idle, Total: time.Second, Phase: -1}
	if diff := cmp.Diff(idle, tm.State()); diff != "" {
		t.Fatalf("state after reset (-want +got):\n%s", diff)
	}

	clock.Advance(2 * time.Second)
	st, ok := tm.Tick(gen)
	assert.False(t, ok)
	assert.Equal(t, idle, st)
	assert.Equal(t, idle, tm.State())
	assert.Zero(t, completions)

	next := tm.Start()
	assert.NotEqual(t, gen, next)
	clock.Advance(time.Second)
	st, ok = tm.Tick(next)
	require.True(t, ok)
	assert.Equal(t, Complete, st.Status)
	assert.Equal(t, 1, completions)
}

func TestTimerRestartAfterComplete(t *testing.T) {
	clock := newFakeClock()
	completions := 0
	tm, err := New(threePhaseConfig(t), WithClock(clock), OnComplete(func(State) { completions++ }))
	require.NoError(t, err)

	for run := 0; run < 2; run++ {
		gen := tm.Start()
		assert.Equal(t, Running, tm.State().Status)
		assert.Zero(t, tm.State().Elapsed)
		clock.Advance(1500 * time.Millisecond)
		_, ok := tm.Tick(gen)
		require.True(t, ok)
	}
	assert.Equal(t, 2, completions)
}

func TestRunCompletesAndStopsTicker(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	ticks := 0
	completions := 0
	tm, err := New(Config{Total: 60 * time.Millisecond, Interval: 5 * time.Millisecond},
		OnComplete(func(State) {
			mu.Lock()
			completions++
			mu.Unlock()
		}))
	require.NoError(t, err)

	st := tm.Run(context.Background(), func(State) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})
	assert.Equal(t, Complete, st.Status)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, completions)
	assert.Positive(t, ticks)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	tm, err := New(Config{Total: time.Hour, Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan State)
	go func() {
		done <- tm.Run(ctx, nil)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case st := <-done:
		assert.Equal(t, Idle, st.Status)
		assert.Zero(t, st.Elapsed)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, Idle, tm.State().Status)
	_, ok := tm.Tick(tm.Generation() - 1)
	assert.False(t, ok, "ticks from the cancelled run are stale")
}

func TestRunStopsOnReset(t *testing.T) {
	defer goleak.VerifyNone(t)

	tm, err := New(Config{Total: time.Hour, Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	started := make(chan struct{})
	done := make(chan State)
	var once sync.Once
	go func() {
		done <- tm.Run(context.Background(), func(State) {
			once.Do(func() { close(started) })
		})
	}()
	<-started
	tm.Reset()

	select {
	case st := <-done:
		assert.Equal(t, Idle, st.Status)
		assert.Zero(t, st.Elapsed)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after reset")
	}
	assert.Equal(t, Idle, tm.State().Status)
}
