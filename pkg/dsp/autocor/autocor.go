// Package autocor computes the fixed-point autocorrelation of a 16-bit sample
// sequence. The lag count is expected to be small (under 64), so a direct
// sum-of-products double loop is used instead of an FFT.
package autocor

import (
	"errors"

	"github.com/telebench/telebench/pkg/dsp/fxp"
)

// ErrLagCount is returned when the requested lag count does not leave at least
// one valid product term for every lag.
var ErrLagCount = errors.New("autocor: lag count must be smaller than the data size")

// Compute fills out with one correlation coefficient per lag 0..len(out)-1 over
// the samples in. Each partial product is widened to 32 bits, arithmetically
// right-shifted by scale bits and summed into a 32-bit accumulator; the
// coefficient is the most significant word of the accumulator read as a 1.31
// fixed-point quantity, truncated to 16 bits. The two buffers must not alias.
func Compute(out, in []int16, scale uint) error {
	if len(out) >= len(in) {
		return ErrLagCount
	}
	AutoCorrelate(out, in, scale)
	return nil
}

// AutoCorrelate is the raw kernel behind Compute. It performs no argument
// validation: callers must guarantee len(out) < len(in), otherwise the inner
// loop bound underflows. The timed benchmark loop calls this directly so the
// measured code has no checks the reference routine does not have.
func AutoCorrelate(out, in []int16, scale uint) {
	for lag := 0; lag < len(out); lag++ {
		var acc int32
		last := len(in) - lag
		for i := 0; i < last; i++ {
			// The shift is applied per term, before accumulation. It is a
			// lossy truncation toward minus infinity and bounds accumulator
			// growth; moving it outside the loop changes the result.
			acc += fxp.RSHIFT32(fxp.SMULBB(in[i], in[i+lag]), scale)
		}
		// Extract the MSW of the 1.31 accumulator.
		out[lag] = int16(fxp.RSHIFT32(acc, 16))
	}
}
