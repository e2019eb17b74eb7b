package bench

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/telebench/telebench/pkg/dsp/autocor"
	"github.com/telebench/telebench/pkg/harness"
)

// Iteration is the event dispatched after each kernel invocation. Output is
// the runner's working buffer: handlers may read it during the dispatch but
// must not retain or mutate it.
type Iteration struct {
	Index   uint64
	Elapsed time.Duration
	Output  []int16
}

// IterationHandler consumes iteration events. Handlers run inside the timed
// loop; anything heavier than counters and occasional logging distorts the
// measurement.
type IterationHandler func(ctx context.Context, it Iteration)

// Runner executes the programmed number of kernel iterations over one
// workload, folding output checksums per the configured CRC mode.
type Runner struct {
	logger *zap.Logger
	wl     Workload
	tc     *harness.TCDef
	mode   CRCMode

	// OnIteration, when set, is invoked after every kernel call.
	OnIteration IterationHandler

	done chan error
	out  []int16

	runTime    time.Duration
	iterations uint64
}

// NewRunner validates the workload and prepares a runner writing its results
// into tc. tc.Iterations holds the programmed iteration count going in and the
// completed count after the run.
func NewRunner(logger *zap.Logger, wl Workload, tc *harness.TCDef, mode CRCMode) (*Runner, error) {
	if err := wl.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		logger: logger,
		wl:     wl,
		tc:     tc,
		mode:   mode,
		done:   make(chan error, 1),
		out:    make([]int16, wl.Lags),
	}, nil
}

// Exec runs the timed loop until the programmed iteration count is reached or
// ctx is cancelled. The cancellation check sits between iterations, so a run
// always stops on a whole-iteration boundary.
func (r *Runner) Exec(ctx context.Context) {
	r.runTime = 0
	r.iterations = 0
	r.tc.CRC = 0

	target := r.tc.Iterations

	var timer harness.Timer
	timer.SignalStart()

	for r.iterations < target {
		select {
		case <-ctx.Done():
			r.finish(&timer)
			r.done <- ctx.Err()
			return
		default:
		}

		start := time.Now()
		autocor.AutoCorrelate(r.out, r.wl.Input, r.wl.Scale)
		elapsed := time.Since(start)

		if r.mode == CRCIntrusive {
			r.tc.CRC = harness.CRCBlock(r.out, 0)
		}
		r.iterations++

		if r.OnIteration != nil {
			r.OnIteration(ctx, Iteration{Index: r.iterations - 1, Elapsed: elapsed, Output: r.out})
		}
	}

	r.finish(&timer)
	r.done <- nil
}

// Done yields the run outcome: nil on completion, the context error on
// cancellation.
func (r *Runner) Done() <-chan error {
	return r.done
}

// Output returns the coefficient buffer from the last iteration.
func (r *Runner) Output() []int16 {
	return r.out
}

func (r *Runner) finish(timer *harness.Timer) {
	r.tc.Duration = timer.SignalFinished()
	r.tc.Iterations = r.iterations
	r.runTime = time.Duration(r.tc.Duration)

	if r.mode == CRCNonIntrusive && r.iterations > 0 {
		r.tc.CRC = harness.CRCBlock(r.out, 0)
	}
}

// Statistics reports the run counters accumulated by the last Exec.
func (r *Runner) Statistics() Statistics {
	s := Statistics{
		RunTime:    r.runTime,
		Iterations: r.iterations,
	}
	if r.runTime > 0 {
		s.Throughput = float64(r.iterations) / r.runTime.Seconds()
	}
	return s
}

// Statistics summarizes one run of the iteration loop.
type Statistics struct {
	RunTime    time.Duration
	Iterations uint64
	Throughput float64 // iterations per second
}

// Print logs the statistics through the runner's usual logger.
func (s Statistics) Print(logger *zap.Logger) {
	logger.Info("runner statistics",
		zap.Duration("run_time", s.RunTime),
		zap.Uint64("iterations", s.Iterations),
		zap.Float64("throughput", s.Throughput))
}
