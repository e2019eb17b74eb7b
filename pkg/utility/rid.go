// Package utility carries small cross-cutting helpers.
package utility

import (
	"sync"

	"github.com/google/uuid"
)

// RunID identifies one benchmark run across logs, host-link events and result
// rows.
type RunID = uuid.UUID

var (
	runID     RunID
	runIDOnce sync.Once
	runIDMu   sync.RWMutex
)

// GetRunID returns the process-wide run id, generating it on first use.
func GetRunID() RunID {
	runIDOnce.Do(func() {
		runID = uuid.Must(uuid.NewV7())
	})

	runIDMu.RLock()
	defer runIDMu.RUnlock()
	return runID
}

// ResetRunID installs a fresh run id, for drivers that execute several runs in
// one process.
func ResetRunID() RunID {
	GetRunID() // make sure the once has fired before replacing

	runIDMu.Lock()
	defer runIDMu.Unlock()

	runID = uuid.Must(uuid.NewV7())
	return runID
}
