package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/telebench/telebench/pkg/harness"
)

func testWorkload() Workload {
	return Workload{
		Name:          "scenario",
		Input:         []int16{4, 2, 1, -3, 5},
		Lags:          3,
		Scale:         0,
		RecIterations: 10,
		ExpectedCRC:   0x2400, // CRC over [0, -1, 0]
	}
}

func newTestRunner(t *testing.T, mode CRCMode, iterations uint64) (*Runner, *harness.TCDef) {
	t.Helper()
	wl := testWorkload()
	tc := &harness.TCDef{
		ID:            "fxp-autocor",
		RecIterations: wl.RecIterations,
		Iterations:    iterations,
	}
	r, err := NewRunner(zap.NewNop(), wl, tc, mode)
	require.NoError(t, err)
	return r, tc
}

func TestRunner_CompletesProgrammedIterations(t *testing.T) {
	r, tc := newTestRunner(t, CRCNonIntrusive, 10)

	go r.Exec(context.Background())
	require.NoError(t, <-r.Done())

	assert.Equal(t, uint64(10), tc.Iterations)
	assert.Greater(t, tc.Duration, uint64(0))
	assert.Equal(t, uint16(0x2400), tc.CRC)
	assert.Equal(t, []int16{0, -1, 0}, r.Output())
}

func TestRunner_IntrusiveCRCMatchesNonIntrusive(t *testing.T) {
	ri, tci := newTestRunner(t, CRCIntrusive, 5)
	rn, tcn := newTestRunner(t, CRCNonIntrusive, 5)

	go ri.Exec(context.Background())
	require.NoError(t, <-ri.Done())
	go rn.Exec(context.Background())
	require.NoError(t, <-rn.Done())

	// The kernel is deterministic, so folding each iteration or folding once
	// at the end must agree.
	assert.Equal(t, tci.CRC, tcn.CRC)
}

func TestRunner_CRCNone(t *testing.T) {
	r, tc := newTestRunner(t, CRCNone, 3)

	go r.Exec(context.Background())
	require.NoError(t, <-r.Done())
	assert.Equal(t, uint16(0), tc.CRC)
}

func TestRunner_DispatchesIterationEvents(t *testing.T) {
	r, _ := newTestRunner(t, CRCNone, 7)

	var indices []uint64
	r.OnIteration = func(ctx context.Context, it Iteration) {
		indices = append(indices, it.Index)
		assert.Equal(t, []int16{0, -1, 0}, it.Output)
	}

	go r.Exec(context.Background())
	require.NoError(t, <-r.Done())

	require.Len(t, indices, 7)
	for i, idx := range indices {
		assert.Equal(t, uint64(i), idx)
	}
}

func TestRunner_Cancellation(t *testing.T) {
	r, tc := newTestRunner(t, CRCNone, 1<<40) // effectively unbounded

	ctx, cancel := context.WithCancel(context.Background())
	go r.Exec(ctx)
	time.Sleep(10 * time.Millisecond)
	cancel()

	err := <-r.Done()
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, tc.Iterations, uint64(1<<40))
	assert.Greater(t, tc.Iterations, uint64(0))
}

func TestRunner_Statistics(t *testing.T) {
	r, _ := newTestRunner(t, CRCNonIntrusive, 100)

	go r.Exec(context.Background())
	require.NoError(t, <-r.Done())

	s := r.Statistics()
	assert.Equal(t, uint64(100), s.Iterations)
	assert.Greater(t, s.RunTime, time.Duration(0))
	assert.Greater(t, s.Throughput, 0.0)
}

func TestNewRunner_RejectsBadWorkloads(t *testing.T) {
	tests := []struct {
		name string
		wl   Workload
	}{
		{"empty input", Workload{Lags: 1}},
		{"zero lags", Workload{Input: []int16{1, 2}}},
		{"lags equal size", Workload{Input: []int16{1, 2}, Lags: 2}},
		{"lags above size", Workload{Input: []int16{1, 2}, Lags: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(zap.NewNop(), tt.wl, &harness.TCDef{}, CRCNone)
			assert.Error(t, err)
		})
	}
}
