package repository

import (
	"sync"

	"swing-screener-backend/internal/domain"
)

// InMemorySnapshotRepository holds the latest scan snapshot for the
// HTTP and websocket delivery layers.
type InMemorySnapshotRepository struct {
	snap domain.Snapshot
	mu   sync.RWMutex
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{
		snap: domain.Snapshot{Signals: []domain.Candidate{}},
	}
}

func (r *InMemorySnapshotRepository) SaveSnapshot(snap domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
}

// GetSnapshot returns a copy; the signal slice is duplicated so a
// caller can never mutate the stored ranking.
func (r *InMemorySnapshotRepository) GetSnapshot() domain.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.snap
	out.Signals = make([]domain.Candidate, len(r.snap.Signals))
	copy(out.Signals, r.snap.Signals)
	return out
}
