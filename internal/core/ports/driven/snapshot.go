package driven

import (
	"context"
	"time"
)

// SnapshotStore persists raw per-day batch snapshots, organised by
// year/month/day path segments. Snapshots are an audit trail for the
// pipeline; losing one never affects the archive itself.
type SnapshotStore interface {
	// Save writes a named snapshot for the given day and returns the
	// location it was written to.
	Save(ctx context.Context, day time.Time, name string, data []byte) (string, error)
}
