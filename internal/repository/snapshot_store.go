package repository

import (
	"sync"

	"CashRadar/internal/domain/models"
	domrepo "CashRadar/internal/domain/repository"
)

// MemorySnapshotStore keeps the latest pipeline snapshot in process memory.
// Nothing is persisted; every run recomputes from the ledger and the store
// only bridges the pipeline and the read-side handlers.
type MemorySnapshotStore struct {
	mu     sync.RWMutex
	latest *models.Snapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// Put swaps in a new snapshot.
func (s *MemorySnapshotStore) Put(snap *models.Snapshot) {
	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()
}

// Latest returns the current snapshot, false when no run has completed yet.
func (s *MemorySnapshotStore) Latest() (*models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, false
	}
	return s.latest, true
}

var _ domrepo.SnapshotStore = (*MemorySnapshotStore)(nil)
