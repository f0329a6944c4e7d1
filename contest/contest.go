package contest

import (
	"time"

	"github.com/google/uuid"
)

// TestCase is an input/expected-output pair. Hidden cases are judged but
// their input and expected output are not exposed to clients.
type TestCase struct {
	Input    string
	Expected string
	Hidden   bool
}

// Problem is a contest problem reference with its judging limits and
// running submission statistics.
type Problem struct {
	ID     string
	Title  string
	Points int

	CpuLimMs  int // 0 means the 1000 ms default
	MemLimKiB int // 0 means the 128 MiB default

	Tests []TestCase

	// counters, bumped atomically by the judge
	Submissions int
	Accepted    int
}

const (
	DefaultCpuLimMs  = 1000
	DefaultMemLimKiB = 128 * 1024
)

func (p Problem) CpuLimMsOrDefault() int {
	if p.CpuLimMs <= 0 {
		return DefaultCpuLimMs
	}
	return p.CpuLimMs
}

func (p Problem) MemLimKiBOrDefault() int {
	if p.MemLimKiB <= 0 {
		return DefaultMemLimKiB
	}
	return p.MemLimKiB
}

// Acceptance is the accepted percentage, derived on read from the
// atomically maintained counters.
func (p Problem) Acceptance() float64 {
	if p.Submissions == 0 {
		return 0
	}
	return float64(p.Accepted) / float64(p.Submissions) * 100
}

type Participant struct {
	UserUUID uuid.UUID
	Username string
	Rating   int
	JoinedAt time.Time
}

// RatingChange is one entry of the per-participant rating ledger,
// written once at finalization.
type RatingChange struct {
	UserUUID  uuid.UUID
	Delta     int
	NewRating int
	AppliedAt time.Time
}

// Contest owns its problems, participants and rating ledger. The stored
// status column is a denormalized cache; Status(now) is authoritative.
type Contest struct {
	UUID  uuid.UUID
	Title string

	StartTime time.Time
	EndTime   time.Time

	Problems     []Problem
	Participants []Participant

	PreviousRanks map[uuid.UUID]int
	RatingChanges []RatingChange
	IsFinalized   bool

	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// Problem returns the problem with the given id, or nil.
func (c *Contest) Problem(id string) *Problem {
	for i := range c.Problems {
		if c.Problems[i].ID == id {
			return &c.Problems[i]
		}
	}
	return nil
}

// IsParticipant reports whether the user has registered for the contest.
func (c *Contest) IsParticipant(userUUID uuid.UUID) bool {
	for _, p := range c.Participants {
		if p.UserUUID == userUUID {
			return true
		}
	}
	return false
}
