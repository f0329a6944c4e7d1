package contest

import (
	"sort"
	"time"

	"github.com/develevate/backend/subm"
	"github.com/google/uuid"
)

// Row is one leaderboard entry. FinalAcceptedAt is the timestamp of the
// participant's latest accepted submission; it stays zero for
// participants without a single accepted one.
type Row struct {
	Rank       int
	UserUUID   uuid.UUID
	Points     int
	PenaltyMin int

	FinalAcceptedAt time.Time
	SolvedProblems  int
}

// ComputeLeaderboard turns a contest's submissions into a total ordering
// of participants: points descending, then penalty ascending, then the
// earlier final accepted timestamp. Fully tied rows share a rank; the
// user uuid keeps the order deterministic regardless of input order.
func ComputeLeaderboard(subms []subm.Submission) []Row {
	type problemOutcome struct {
		acceptedAt time.Time
		points     int
		penaltyMin int
		accepted   bool
	}

	perUser := map[uuid.UUID]map[string]problemOutcome{}
	for _, s := range subms {
		if s.JudgedAt == nil {
			continue
		}
		if !s.Accepted() {
			continue
		}
		byProblem, ok := perUser[s.UserUUID]
		if !ok {
			byProblem = map[string]problemOutcome{}
			perUser[s.UserUUID] = byProblem
		}
		prev, seen := byProblem[s.ProblemID]
		// the first accepted submission on a problem is the final one;
		// later accepted resubmissions do not improve or worsen it
		if seen && prev.acceptedAt.Before(s.CreatedAt) {
			continue
		}
		byProblem[s.ProblemID] = problemOutcome{
			acceptedAt: s.CreatedAt,
			points:     s.Points,
			penaltyMin: s.PenaltyMin,
			accepted:   true,
		}
	}

	// participants that submitted but never solved anything still rank
	for _, s := range subms {
		if s.JudgedAt == nil {
			continue
		}
		if _, ok := perUser[s.UserUUID]; !ok {
			perUser[s.UserUUID] = map[string]problemOutcome{}
		}
	}

	rows := make([]Row, 0, len(perUser))
	for userUUID, byProblem := range perUser {
		row := Row{UserUUID: userUUID}
		for _, outcome := range byProblem {
			if !outcome.accepted {
				continue
			}
			row.Points += outcome.points
			row.PenaltyMin += outcome.penaltyMin
			row.SolvedProblems++
			if outcome.acceptedAt.After(row.FinalAcceptedAt) {
				row.FinalAcceptedAt = outcome.acceptedAt
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].PenaltyMin != rows[j].PenaltyMin {
			return rows[i].PenaltyMin < rows[j].PenaltyMin
		}
		if !rows[i].FinalAcceptedAt.Equal(rows[j].FinalAcceptedAt) {
			// a zero timestamp means nothing solved; it sorts last
			if rows[i].FinalAcceptedAt.IsZero() {
				return false
			}
			if rows[j].FinalAcceptedAt.IsZero() {
				return true
			}
			return rows[i].FinalAcceptedAt.Before(rows[j].FinalAcceptedAt)
		}
		return rows[i].UserUUID.String() < rows[j].UserUUID.String()
	})

	for i := range rows {
		if i > 0 && tied(rows[i], rows[i-1]) {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}

	return rows
}

func tied(a, b Row) bool {
	return a.Points == b.Points &&
		a.PenaltyMin == b.PenaltyMin &&
		a.FinalAcceptedAt.Equal(b.FinalAcceptedAt)
}

// ratingK scales the rank improvement into a rating delta.
const ratingK = 10

// Finalize freezes the contest results exactly once: it compares the
// computed ranks against PreviousRanks, writes the rating ledger and
// sets IsFinalized. A second call fails until Reopen.
func (c *Contest) Finalize(rows []Row, now time.Time) error {
	if c.IsFinalized {
		return ErrAlreadyFinalized()
	}

	ratings := map[uuid.UUID]int{}
	for _, p := range c.Participants {
		ratings[p.UserUUID] = p.Rating
	}

	c.RatingChanges = make([]RatingChange, 0, len(rows))
	for _, row := range rows {
		prev, hasPrev := c.PreviousRanks[row.UserUUID]
		delta := 0
		if hasPrev {
			delta = (prev - row.Rank) * ratingK
		}
		c.RatingChanges = append(c.RatingChanges, RatingChange{
			UserUUID:  row.UserUUID,
			Delta:     delta,
			NewRating: ratings[row.UserUUID] + delta,
			AppliedAt: now,
		})
	}

	c.IsFinalized = true
	return nil
}

// Reopen is the explicit unlock for re-finalization. It discards the
// rating ledger written by the previous Finalize.
func (c *Contest) Reopen() error {
	if !c.IsFinalized {
		return ErrNotFinalized()
	}
	c.IsFinalized = false
	c.RatingChanges = nil
	return nil
}
