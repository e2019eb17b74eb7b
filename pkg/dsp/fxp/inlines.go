// Package fxp holds the fixed-point arithmetic primitives shared by the DSP
// kernels. Names follow the usual DSP macro conventions so the kernels read
// like their reference implementations.
package fxp

// SMULBB returns the widened signed product of two 16-bit samples. The result
// always fits in 32 bits, so the multiply itself cannot overflow.
func SMULBB(a, b int16) int32 {
	return int32(a) * int32(b)
}

// SMULL returns the 64-bit signed product of two 32-bit values.
func SMULL(a, b int32) int64 {
	return int64(a) * int64(b)
}

// RSHIFT32 is an arithmetic (sign-extending) right shift. Go guarantees
// arithmetic semantics for shifts on signed integers; this helper exists so the
// kernels state the intent explicitly and so the negative-operand behavior is
// pinned down by tests.
func RSHIFT32(a int32, shift uint) int32 {
	return a >> shift
}

// RSHIFT64 is the 64-bit arithmetic right shift.
func RSHIFT64(a int64, shift uint) int64 {
	return a >> shift
}

// SAT16 saturates a 32-bit value to the 16-bit signed range.
func SAT16(a int32) int16 {
	if a > 32767 {
		return 32767
	}
	if a < -32768 {
		return -32768
	}
	return int16(a)
}
