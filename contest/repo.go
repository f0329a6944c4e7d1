package contest

import (
	"context"

	"github.com/google/uuid"
)

// Repo persists contests. Implementations: pgrepo for Postgres,
// NewInMemRepo for tests.
type Repo interface {
	// Store writes the aggregate. The per-problem submission and
	// accepted counters are owned by BumpProblemCounters: for problems
	// that already exist, Store keeps the persisted counters and ignores
	// the snapshot's values.
	Store(ctx context.Context, c Contest) error
	Get(ctx context.Context, id uuid.UUID) (Contest, error)
	List(ctx context.Context) ([]Contest, error)
	// BumpProblemCounters increments the problem's submission counter,
	// and its accepted counter when accepted is true, as one atomic
	// update. Acceptance percentage is always derived on read.
	BumpProblemCounters(ctx context.Context, contestID uuid.UUID, problemID string, accepted bool) error
}
