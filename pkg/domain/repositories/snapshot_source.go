package repositories

import (
	"context"

	"github.com/factorykit/planner/pkg/domain/entities"
)

// SnapshotSource produces one consistent snapshot of materials and
// products-with-BOM. Implementations own the consistency guarantee: the two
// reads must come from a single point in time (one lock hold, one
// transaction), never piecemeal.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*entities.Snapshot, error)
}
