package demoui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/agentshift/internal/content"
	"github.com/verte-zerg/agentshift/internal/timer"
)

// RunPlain runs every lane concurrently and prints each phase change as a
// line. It returns when all lanes complete or ctx is done.
func RunPlain(ctx context.Context, w io.Writer, demo content.Demo, opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	timers := make([]*timer.Timer, 0, len(demo.Lanes))
	for _, l := range demo.Lanes {
		t, err := newLaneTimer(l, opts, logger)
		if err != nil {
			return err
		}
		timers = append(timers, t)
	}

	var mu sync.Mutex
	printf := func(format string, args ...any) error {
		mu.Lock()
		defer mu.Unlock()
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}

	if err := printf("%s\n", demo.Title); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range timers {
		t := t
		name := demo.Lanes[i].Name
		phases := t.Config().Phases
		g.Go(func() error {
			laneCtx, cancel := context.WithCancel(gctx)
			defer cancel()

			last := -1
			var writeErr error
			final := t.Run(laneCtx, func(st timer.State) {
				if writeErr != nil {
					return
				}
				// A coarse tick can cross several boundaries at once.
				for p := last + 1; p <= st.Phase; p++ {
					at := phases[p].At
					if p == st.Phase {
						at = st.Elapsed
					}
					if writeErr = printf("[%5.1fs] %-14s %s\n", at.Seconds(), name, phases[p].Name); writeErr != nil {
						cancel()
						return
					}
					last = p
				}
			})
			if writeErr != nil {
				return writeErr
			}
			if final.Status != timer.Complete {
				return gctx.Err()
			}
			return printf("[%5.1fs] %-14s done\n", roundSeconds(final.Total), name)
		})
	}
	return g.Wait()
}

func roundSeconds(d time.Duration) float64 {
	return d.Round(100 * time.Millisecond).Seconds()
}
