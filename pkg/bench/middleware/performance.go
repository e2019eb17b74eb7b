package middleware

import (
	"context"
	"time"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/telebench/telebench/pkg/bench"
)

// Performance accumulates per-iteration kernel durations and summarizes their
// distribution at the end of the run.
type Performance struct {
	logger *zap.Logger

	totalDur  time.Duration
	durations []float64 // nanoseconds
}

func NewPerformance(logger *zap.Logger) *Performance {
	return &Performance{
		logger: logger,
	}
}

func (p *Performance) WithIteration(handler bench.IterationHandler) bench.IterationHandler {
	return func(ctx context.Context, it bench.Iteration) {
		p.totalDur += it.Elapsed
		p.durations = append(p.durations, float64(it.Elapsed))
		if handler != nil {
			handler(ctx, it)
		}
	}
}

func (p *Performance) PrintStatistics() {
	if len(p.durations) == 0 {
		p.logger.Warn("no iterations observed; nothing to summarize")
		return
	}

	mean, err := stats.Mean(p.durations)
	if err != nil {
		p.logger.Warn("cannot compute duration statistics", zap.Error(err))
		return
	}
	stddev, _ := stats.StandardDeviation(p.durations)
	median, _ := stats.Median(p.durations)
	p95, _ := stats.Percentile(p.durations, 95)
	minDur, _ := stats.Min(p.durations)
	maxDur, _ := stats.Max(p.durations)

	p.logger.Info("performance statistics",
		zap.Int("iterations", len(p.durations)),
		zap.Duration("total_duration", p.totalDur),
		zap.Duration("mean_duration", time.Duration(mean)),
		zap.Duration("median_duration", time.Duration(median)),
		zap.Duration("p95_duration", time.Duration(p95)),
		zap.Duration("min_duration", time.Duration(minDur)),
		zap.Duration("max_duration", time.Duration(maxDur)),
		zap.Duration("stddev_duration", time.Duration(stddev)))
}
