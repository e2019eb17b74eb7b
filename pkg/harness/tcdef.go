// Package harness carries the benchmark-side half of the test harness
// contract: benchmark identity, the duration timer, result checksums and the
// final pass/fail report.
package harness

// Exit codes reported by ReportResults.
const (
	Success = 0
	Failure = 1
)

// TCDef describes one benchmark run: its identity, the iteration contract and
// the result fields the run fills in. The driver allocates one per run, the
// runner mutates Iterations, Duration and CRC, and ReportResults folds it into
// the final verdict.
type TCDef struct {
	ID        string // benchmark identifier
	Desc      string // one-line description
	Member    string
	Processor string
	Platform  string

	RecIterations uint64 // iterations required for a valid score
	Iterations    uint64 // iterations actually executed
	Duration      uint64 // elapsed ticks measured by the duration timer
	CRC           uint16 // running checksum over kernel output

	// Auxiliary verification values; unused slots stay zero.
	V1, V2, V3, V4 int32
}
