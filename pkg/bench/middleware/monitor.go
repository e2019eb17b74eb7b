package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/telebench/telebench/pkg/bench"
)

type MonitorFlags uint16

const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorIterations
	MonitorOutput
)

// Monitor dumps selected iteration events to the log. Logging inside the timed
// loop is intrusive, so everything is off unless a flag asks for it.
type Monitor struct {
	logger *zap.Logger
	flags  MonitorFlags
}

func NewMonitor(logger *zap.Logger, flags MonitorFlags) *Monitor {
	return &Monitor{
		logger: logger,
		flags:  flags,
	}
}

func (m *Monitor) WithIteration(handler bench.IterationHandler) bench.IterationHandler {
	return func(ctx context.Context, it bench.Iteration) {
		if m.flags&MonitorIterations != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("event",
				zap.Uint64("iteration", it.Index),
				zap.Duration("elapsed", it.Elapsed))
		}
		if m.flags&MonitorOutput != 0 || m.flags&MonitorAll != 0 {
			m.logger.Info("output",
				zap.Uint64("iteration", it.Index),
				zap.Int16s("coefficients", it.Output))
		}
		if handler != nil {
			handler(ctx, it)
		}
	}
}
