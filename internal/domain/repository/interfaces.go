package repository

import "CashRadar/internal/domain/models"

// SnapshotStore holds the latest successful pipeline result. A run swaps the
// snapshot atomically; readers never observe a partial run.
type SnapshotStore interface {
	Put(s *models.Snapshot)
	Latest() (*models.Snapshot, bool)
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordRun(status string)
	RecordStageDuration(stage string, seconds float64)
	RecordAccounts(n int)
	RecordError(kind string)
}
