package hackathon

import (
	"context"

	"github.com/google/uuid"
)

// Repo persists hackathons and their submissions. AddVote must be a
// single atomic operation: a duplicate vote fails with ErrAlreadyVoted
// and concurrent duplicates leave exactly one vote recorded.
type Repo interface {
	Store(ctx context.Context, h Hackathon) error
	Get(ctx context.Context, id uuid.UUID) (Hackathon, error)
	List(ctx context.Context) ([]Hackathon, error)

	StoreSubmission(ctx context.Context, s Submission) error
	GetSubmission(ctx context.Context, id uuid.UUID) (Submission, error)
	// ListSubmissions returns the hackathon's submissions ordered by
	// total votes descending.
	ListSubmissions(ctx context.Context, hackathonID uuid.UUID) ([]Submission, error)

	AddVote(ctx context.Context, submissionID uuid.UUID, userUUID uuid.UUID) error
	// RemoveVote deletes the user's vote and refreshes the total in the
	// same atomic operation. A missing vote fails with ErrNotVoted.
	RemoveVote(ctx context.Context, submissionID uuid.UUID, userUUID uuid.UUID) error
}
