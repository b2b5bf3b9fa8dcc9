package interfaces

import (
	"context"

	"classmate/pkg/types"
)

// SnapshotStore persists the model between runs.
// The core never calls it directly; the application hydrates the model from
// LoadSnapshot at startup and calls SaveSnapshot after each change.
type SnapshotStore interface {
	// SaveSnapshot replaces the stored state with snapshot.
	SaveSnapshot(ctx context.Context, snapshot *types.Snapshot) error

	// LoadSnapshot returns the stored state. An empty store yields an empty
	// snapshot, not an error.
	LoadSnapshot(ctx context.Context) (*types.Snapshot, error)

	// HealthCheck verifies the store is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
