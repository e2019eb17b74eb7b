package harness

import (
	"fmt"

	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// ReportResults logs the standard result report for a finished run and returns
// the process exit code. When crcChecked is true the running CRC is compared
// against expectedCRC and a mismatch fails the run; the iteration contract is
// always enforced.
func ReportResults(logger *zap.Logger, tc *TCDef, expectedCRC uint16, crcChecked bool) int {
	exitCode := Success

	reportInfo(logger, tc)

	fields := []zap.Field{
		zap.Uint64("iterations", tc.Iterations),
		zap.Uint64("duration_ticks", tc.Duration),
	}
	if crcChecked {
		fields = append(fields, zap.String("crc", hex16(tc.CRC)))
	}
	if tc.V1 != 0 || tc.V2 != 0 || tc.V3 != 0 || tc.V4 != 0 {
		fields = append(fields,
			zap.Int32("v1", tc.V1), zap.Int32("v2", tc.V2),
			zap.Int32("v3", tc.V3), zap.Int32("v4", tc.V4))
	}
	logger.Info("results", fields...)

	if tc.Duration > 0 {
		if itersPerSec, timePerIter, ok := rates(tc); ok {
			logger.Info("throughput",
				zap.String("iterations_per_sec", itersPerSec),
				zap.String("sec_per_iteration", timePerIter),
				zap.Uint64("ticks_per_sec", TicksPerSec()))
		}
	}

	if crcChecked && tc.CRC != expectedCRC {
		logger.Error("crc mismatch",
			zap.String("actual", hex16(tc.CRC)),
			zap.String("expected", hex16(expectedCRC)))
		exitCode = Failure
	}
	if tc.Iterations != tc.RecIterations {
		logger.Error("iteration count mismatch",
			zap.Uint64("actual", tc.Iterations),
			zap.Uint64("expected", tc.RecIterations))
		exitCode = Failure
	}

	if exitCode == Success {
		logger.Info("done", zap.String("benchmark", tc.ID))
	} else {
		logger.Error("failure", zap.String("benchmark", tc.ID), zap.Int("exit_code", exitCode))
	}
	return exitCode
}

func reportInfo(logger *zap.Logger, tc *TCDef) {
	logger.Info("benchmark",
		zap.String("id", tc.ID),
		zap.String("desc", tc.Desc),
		zap.String("member", tc.Member),
		zap.String("processor", tc.Processor),
		zap.String("platform", tc.Platform))
	logger.Info("timer",
		zap.Bool("available", TimerAvailable()),
		zap.Bool("intrusive", TimerIsIntrusive()),
		zap.Uint64("ticks_per_sec", TicksPerSec()),
		zap.Uint64("granularity", TickGranularity()))
	if tc.Iterations != tc.RecIterations {
		logger.Warn("programmed iterations differ from required iterations",
			zap.Uint64("programmed", tc.Iterations),
			zap.Uint64("required", tc.RecIterations))
	}
}

// rates computes iterations/sec and its reciprocal in decimal arithmetic so the
// report strings are exact rather than float-formatted.
func rates(tc *TCDef) (itersPerSec, timePerIter string, ok bool) {
	iters, err := decimal.New(int64(tc.Iterations), 0)
	if err != nil {
		return "", "", false
	}
	dur, err := decimal.New(int64(tc.Duration), 0)
	if err != nil {
		return "", "", false
	}
	perSec, err := decimal.New(int64(TicksPerSec()), 0)
	if err != nil {
		return "", "", false
	}

	seconds, err := dur.Quo(perSec)
	if err != nil {
		return "", "", false
	}
	ips, err := iters.Quo(seconds)
	if err != nil {
		return "", "", false
	}
	spi, err := seconds.Quo(iters)
	if err != nil {
		return "", "", false
	}
	return ips.Round(3).String(), spi.Round(9).String(), true
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04x", v)
}
