// Package bench drives timed kernel runs: it owns the iteration loop, the
// per-iteration event dispatch and the run statistics.
package bench

import (
	"errors"
	"fmt"
)

// CRCMode selects where the output checksum is folded.
type CRCMode int

const (
	// CRCNone disables checksum folding entirely.
	CRCNone CRCMode = iota
	// CRCIntrusive refolds the checksum inside the timed loop on every
	// iteration, so the checksum cost is part of the measured duration.
	CRCIntrusive
	// CRCNonIntrusive folds the checksum once after the timed loop.
	CRCNonIntrusive
)

// Workload is one benchmark configuration: the input samples and the kernel
// parameters, plus the verification contract for the standard datasets.
type Workload struct {
	Name  string
	Input []int16
	Lags  int
	Scale uint

	RecIterations uint64 // iterations required for a valid score
	ExpectedCRC   uint16 // checksum over one output block
}

var (
	errNoInput = errors.New("bench: workload has no input samples")
	errNoLags  = errors.New("bench: workload needs at least one lag")
)

// Validate checks the workload against the kernel's caller contract.
func (w Workload) Validate() error {
	if len(w.Input) == 0 {
		return errNoInput
	}
	if w.Lags <= 0 {
		return errNoLags
	}
	if w.Lags >= len(w.Input) {
		return fmt.Errorf("bench: workload %q: %d lags for %d samples", w.Name, w.Lags, len(w.Input))
	}
	return nil
}
