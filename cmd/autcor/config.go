package main

import (
	"github.com/telebench/telebench/pkg/bench"
	"github.com/telebench/telebench/pkg/signal"
)

const (
	benchID   = "telecom/autcor"
	benchDesc = "fixed point autocorrelation"
	member    = "telebench"
	processor = "host"
	platform  = "native"

	defaultDataset    = "pulse"
	defaultIterations = 10000

	dataSize = 1024
	lagCount = 16

	// Sine resonator: 2*cos(2*pi/16) in Q14 and amp*sin(2*pi/16) for amp 8192.
	sineCoefQ14 = 30274
	sineSeed    = 3135

	noiseSeed = 0x1234
)

// workloads returns the standard dataset table. The expected CRCs pin the
// kernel output bit-for-bit; each scale factor keeps the scaled accumulation
// over 1024 samples inside 32 bits.
func workloads() map[string]bench.Workload {
	return map[string]bench.Workload{
		"pulse": {
			Name:          "pulse",
			Input:         signal.Pulse(dataSize, 8192, 64, 128),
			Lags:          lagCount,
			Scale:         5,
			RecIterations: defaultIterations,
			ExpectedCRC:   0xb49f,
		},
		"sine": {
			Name:          "sine",
			Input:         signal.Sine(dataSize, sineCoefQ14, sineSeed),
			Lags:          lagCount,
			Scale:         8,
			RecIterations: defaultIterations,
			ExpectedCRC:   0xb3de,
		},
		"noise": {
			Name:          "noise",
			Input:         signal.Noise(dataSize, noiseSeed),
			Lags:          lagCount,
			Scale:         5,
			RecIterations: defaultIterations,
			ExpectedCRC:   0x96e4,
		},
	}
}
