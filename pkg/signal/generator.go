// Package signal generates the deterministic sample sequences the benchmark
// workloads run against. Every generator is integer-only, so the sequences are
// bit-identical on every platform and the checksums over kernel output are
// stable run-to-run constants.
package signal

import "github.com/telebench/telebench/pkg/dsp/fxp"

// Pulse returns n samples that are zero except for a rectangular pulse of the
// given amplitude covering [start, start+width).
func Pulse(n int, amp int16, start, width int) []int16 {
	out := make([]int16, n)
	for i := start; i < start+width && i < n; i++ {
		if i >= 0 {
			out[i] = amp
		}
	}
	return out
}

// Sine returns n samples of a sine wave synthesized by the two-pole resonator
// recurrence s[i] = (coefQ14*s[i-1] >> 14) - s[i-2], seeded with s[0] = 0 and
// s[1] = s1. coefQ14 is 2*cos(w) in Q14, s1 sets the amplitude (amp*sin(w)).
// The recurrence stays in integer arithmetic end to end.
func Sine(n int, coefQ14 int32, s1 int16) []int16 {
	out := make([]int16, n)
	if n > 1 {
		out[1] = s1
	}
	for i := 2; i < n; i++ {
		v := int32(fxp.RSHIFT64(fxp.SMULL(coefQ14, int32(out[i-1])), 14)) - int32(out[i-2])
		out[i] = fxp.SAT16(v)
	}
	return out
}

// Noise returns n pseudo-random samples from a fixed-seed linear congruential
// generator, shifted down to roughly a quarter of the 16-bit range so scaled
// accumulation over kilosample blocks stays inside 32 bits.
func Noise(n int, seed uint32) []int16 {
	out := make([]int16, n)
	for i := range out {
		seed = seed*1664525 + 1013904223
		out[i] = int16(seed>>16) >> 3
	}
	return out
}
