package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/telebench/telebench/pkg/bench"
)

// Telemetry counts iteration events flowing through the chain.
type Telemetry struct {
	logger *zap.Logger

	iterationCounter uint64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithIteration(handler bench.IterationHandler) bench.IterationHandler {
	return func(ctx context.Context, it bench.Iteration) {
		t.iterationCounter++
		if handler != nil {
			handler(ctx, it)
		}
	}
}

func (t *Telemetry) Iterations() uint64 {
	return t.iterationCounter
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("event statistics",
		zap.Uint64("iteration_events", t.iterationCounter))
}
