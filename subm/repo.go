package subm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repo persists submissions. Implementations: pgrepo for Postgres,
// NewInMemRepo for tests.
type Repo interface {
	Store(ctx context.Context, s Submission) error
	Get(ctx context.Context, id uuid.UUID) (Submission, error)
	ListByContest(ctx context.Context, contestID uuid.UUID) ([]Submission, error)
	// CountFailedAttempts counts judged non-accepted submissions by the
	// user on the problem before the given time.
	CountFailedAttempts(ctx context.Context, userUUID uuid.UUID, contestID uuid.UUID, problemID string, before time.Time) (int, error)
}
