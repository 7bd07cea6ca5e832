package storage

import (
	"fmt"
	"log"

	"github.com/google/uuid"
)

// PoolStats is a point-in-time snapshot of buffer pool occupancy, tagged
// with the owning pool's instance id so log lines from multiple pools in
// one process (as in tests, which open many pools against many temp files)
// can be correlated back to the pool that produced them.
type PoolStats struct {
	InstanceID uuid.UUID
	PoolSize   int
	Resident   int
	Free       int
	Eligible   int // frames the replacer could evict right now
}

// Diagnostics wraps a BufferPoolManager with an instance tag for logging
// and stats reporting.
type Diagnostics struct {
	id  uuid.UUID
	bpm *BufferPoolManager
}

// NewDiagnostics tags bpm with a fresh instance id.
func NewDiagnostics(bpm *BufferPoolManager) *Diagnostics {
	return &Diagnostics{id: uuid.New(), bpm: bpm}
}

// NewDiagnosticsWithID tags bpm with a caller-supplied instance id instead of
// a fresh random one, so operators can pin a pool's log correlation tag
// across restarts (e.g. one id per configured database file).
func NewDiagnosticsWithID(bpm *BufferPoolManager, id string) (*Diagnostics, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("storage: NewDiagnosticsWithID: %w", err)
	}
	return &Diagnostics{id: parsed, bpm: bpm}, nil
}

// InstanceID returns the pool's correlation tag.
func (d *Diagnostics) InstanceID() uuid.UUID { return d.id }

// Snapshot returns the current occupancy of the wrapped pool.
func (d *Diagnostics) Snapshot() PoolStats {
	return PoolStats{
		InstanceID: d.id,
		PoolSize:   d.bpm.PoolSize(),
		Resident:   len(d.bpm.pageTable),
		Free:       len(d.bpm.freeList),
		Eligible:   d.bpm.replacer.Size(),
	}
}

// LogSnapshot writes the current occupancy to the standard logger, prefixed
// with the pool's instance id.
func (d *Diagnostics) LogSnapshot() {
	s := d.Snapshot()
	log.Printf("storage: pool %s: %d/%d resident, %d free, %d eligible",
		s.InstanceID, s.Resident, s.PoolSize, s.Free, s.Eligible)
}
