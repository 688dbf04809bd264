// Package lockstep runs a cohort of workers that all start their measured work
// at the same instant and times the cohort as a whole.
package lockstep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ProtonMail/kvbench/async"
	"github.com/ProtonMail/kvbench/logging"
	"github.com/ProtonMail/kvbench/timing"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidConcurrency = errors.New("concurrency must be at least one")

	errBarrierBroken = errors.New("start barrier broken before all workers were ready")
)

// Execute builds one state per worker with factory, then runs fn once per state
// on its own goroutine. Workers and the caller meet on a barrier of
// concurrency+1 parties; the timer starts when the caller leaves the barrier and
// stops once every worker has returned, so factory calls are never timed.
//
// The returned duration covers the whole cohort. If any worker fails or
// panics the error is returned after all workers have joined and the duration
// is zero.
func Execute[S any](concurrency int, factory func() S, fn func(S) error) (time.Duration, error) {
	if concurrency < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, concurrency)
	}

	barrier := NewBarrier(concurrency + 1)

	var group errgroup.Group

	for i := 0; i < concurrency; i++ {
		var state S

		if err := async.Catch(func() error {
			state = factory()
			return nil
		}); err != nil {
			barrier.Break()

			// Workers launched so far leave the broken barrier without running fn.
			_ = group.Wait()

			return 0, fmt.Errorf("worker %d setup: %w", i, err)
		}

		worker := i

		group.Go(func() error {
			if !barrier.Wait() {
				return errBarrierBroken
			}

			return runWorker(worker, concurrency, func() error {
				return fn(state)
			})
		})
	}

	barrier.Wait()

	var timer timing.Timer

	timer.Start()
	err := group.Wait()
	timer.Stop()

	if err != nil {
		return 0, err
	}

	return timer.Elapsed(), nil
}

func runWorker(worker, concurrency int, fn func() error) error {
	var err error

	logging.DoAnnotate(context.Background(), func(context.Context) {
		err = async.Catch(fn)
	}, map[string]any{
		"worker":      worker,
		"concurrency": concurrency,
	})

	if err != nil {
		return fmt.Errorf("worker %d: %w", worker, err)
	}

	return nil
}
