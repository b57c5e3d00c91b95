package port

import (
	"context"

	"github.com/bnema/eve/internal/domain/entity"
)

// SchemaSnapshotStore persists raw schema backend responses by endpoint key.
type SchemaSnapshotStore interface {
	// Get returns the stored snapshot for key, or nil when none exists.
	Get(ctx context.Context, key string) (*entity.SchemaSnapshot, error)

	// Put inserts or replaces the snapshot for snap.Key.
	Put(ctx context.Context, snap *entity.SchemaSnapshot) error

	// Count returns the number of stored snapshots.
	Count(ctx context.Context) (int, error)

	// Clear deletes every snapshot and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
