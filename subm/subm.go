package subm

import (
	"time"

	"github.com/google/uuid"
)

// TestResult is the outcome of one test case. Time and memory stay zero
// when the case was never executed (Attempted == false).
type TestResult struct {
	Input    string
	Expected string
	Actual   string

	Passed    bool
	Attempted bool

	CpuMs  int64
	MemKiB int64

	Verdict Verdict
}

// Submission is immutable after judging completes. Only the contest
// finalization pass touches it again, to annotate the final rank.
type Submission struct {
	UUID      uuid.UUID
	UserUUID  uuid.UUID
	ContestID uuid.UUID
	ProblemID string

	Code     string
	Language string

	Results []TestResult
	Verdict Verdict
	Stage   string

	Points     int
	PenaltyMin int

	CreatedAt time.Time
	JudgedAt  *time.Time
}

// PenaltyPerFailedAttemptMin is added to a participant's effective time
// for every failed attempt on a problem prior to its final accepted one.
const PenaltyPerFailedAttemptMin = 20

// Accepted reports whether the submission's aggregate verdict is accepted.
func (s *Submission) Accepted() bool {
	return s.Verdict == VerdictAccepted
}
