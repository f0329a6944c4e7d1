package pgrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/develevate/backend/contest"
	"github.com/develevate/backend/logger"
)

type pgContestRepo struct {
	pool *pgxpool.Pool
}

func NewPgContestRepo(pool *pgxpool.Pool) *pgContestRepo {
	return &pgContestRepo{pool: pool}
}

type testCaseRow struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Hidden   bool   `json:"hidden"`
}

func (r *pgContestRepo) Store(ctx context.Context, c contest.Contest) error {
	log := logger.FromContext(ctx)
	log.Debug("storing contest", "contest_id", c.UUID)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	prevRanks := map[string]int{}
	for userUUID, rank := range c.PreviousRanks {
		prevRanks[userUUID.String()] = rank
	}
	prevRanksJson, err := json.Marshal(prevRanks)
	if err != nil {
		return fmt.Errorf("failed to marshal previous ranks: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO contests (
			uuid, title, start_time, end_time, previous_ranks,
			is_finalized, cached_status, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (uuid) DO UPDATE SET
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			previous_ranks = EXCLUDED.previous_ranks,
			is_finalized = EXCLUDED.is_finalized,
			cached_status = EXCLUDED.cached_status
	`,
		c.UUID, c.Title, c.StartTime, c.EndTime, prevRanksJson,
		c.IsFinalized, string(c.Status(time.Now())), c.CreatedBy, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert contest: %w", err)
	}

	deleteQueries := []string{
		`DELETE FROM contest_participants WHERE contest_uuid = $1`,
		`DELETE FROM contest_rating_changes WHERE contest_uuid = $1`,
	}
	for _, query := range deleteQueries {
		if _, err := tx.Exec(ctx, query, c.UUID); err != nil {
			return fmt.Errorf("failed to delete existing contest data: %w", err)
		}
	}

	// Problems are upserted rather than replaced. The submissions and
	// accepted columns are owned by BumpProblemCounters; writing them
	// from an aggregate snapshot would roll back bumps committed while
	// the snapshot was in flight.
	problemIDs := make([]string, len(c.Problems))
	for i, p := range c.Problems {
		problemIDs[i] = p.ID
	}
	_, err = tx.Exec(ctx, `
		DELETE FROM contest_problems WHERE contest_uuid = $1 AND id <> ALL($2)
	`, c.UUID, problemIDs)
	if err != nil {
		return fmt.Errorf("failed to delete removed contest problems: %w", err)
	}

	for i, p := range c.Problems {
		tests := make([]testCaseRow, len(p.Tests))
		for j, tc := range p.Tests {
			tests[j] = testCaseRow{Input: tc.Input, Expected: tc.Expected, Hidden: tc.Hidden}
		}
		testsJson, err := json.Marshal(tests)
		if err != nil {
			return fmt.Errorf("failed to marshal test cases: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO contest_problems (
				contest_uuid, id, title, points, cpu_lim_ms, mem_lim_kib,
				tests, submissions, accepted, ord
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (contest_uuid, id) DO UPDATE SET
				title = EXCLUDED.title,
				points = EXCLUDED.points,
				cpu_lim_ms = EXCLUDED.cpu_lim_ms,
				mem_lim_kib = EXCLUDED.mem_lim_kib,
				tests = EXCLUDED.tests,
				ord = EXCLUDED.ord
		`,
			c.UUID, p.ID, p.Title, p.Points, p.CpuLimMs, p.MemLimKiB,
			testsJson, p.Submissions, p.Accepted, i,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert contest problem: %w", err)
		}
	}

	for _, p := range c.Participants {
		_, err = tx.Exec(ctx, `
			INSERT INTO contest_participants (
				contest_uuid, user_uuid, username, rating, joined_at
			) VALUES ($1, $2, $3, $4, $5)
		`, c.UUID, p.UserUUID, p.Username, p.Rating, p.JoinedAt)
		if err != nil {
			return fmt.Errorf("failed to insert contest participant: %w", err)
		}
	}

	for _, rc := range c.RatingChanges {
		_, err = tx.Exec(ctx, `
			INSERT INTO contest_rating_changes (
				contest_uuid, user_uuid, delta, new_rating, applied_at
			) VALUES ($1, $2, $3, $4, $5)
		`, c.UUID, rc.UserUUID, rc.Delta, rc.NewRating, rc.AppliedAt)
		if err != nil {
			return fmt.Errorf("failed to insert rating change: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *pgContestRepo) Get(ctx context.Context, id uuid.UUID) (contest.Contest, error) {
	c, err := r.getContestRow(ctx, id)
	if err != nil {
		return contest.Contest{}, err
	}

	if err := r.loadProblems(ctx, &c); err != nil {
		return contest.Contest{}, err
	}
	if err := r.loadParticipants(ctx, &c); err != nil {
		return contest.Contest{}, err
	}
	if err := r.loadRatingChanges(ctx, &c); err != nil {
		return contest.Contest{}, err
	}
	return c, nil
}

func (r *pgContestRepo) getContestRow(ctx context.Context, id uuid.UUID) (contest.Contest, error) {
	var c contest.Contest
	var prevRanksJson []byte
	err := r.pool.QueryRow(ctx, `
		SELECT uuid, title, start_time, end_time, previous_ranks,
			is_finalized, created_by, created_at
		FROM contests WHERE uuid = $1
	`, id).Scan(
		&c.UUID, &c.Title, &c.StartTime, &c.EndTime, &prevRanksJson,
		&c.IsFinalized, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contest.Contest{}, contest.ErrContestNotFound()
		}
		return contest.Contest{}, fmt.Errorf("failed to query contest: %w", err)
	}

	prevRanks := map[string]int{}
	if err := json.Unmarshal(prevRanksJson, &prevRanks); err != nil {
		return contest.Contest{}, fmt.Errorf("failed to unmarshal previous ranks: %w", err)
	}
	c.PreviousRanks = map[uuid.UUID]int{}
	for userStr, rank := range prevRanks {
		userUUID, err := uuid.Parse(userStr)
		if err != nil {
			return contest.Contest{}, fmt.Errorf("failed to parse previous rank user uuid: %w", err)
		}
		c.PreviousRanks[userUUID] = rank
	}
	return c, nil
}

func (r *pgContestRepo) loadProblems(ctx context.Context, c *contest.Contest) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, points, cpu_lim_ms, mem_lim_kib, tests, submissions, accepted
		FROM contest_problems WHERE contest_uuid = $1 ORDER BY ord
	`, c.UUID)
	if err != nil {
		return fmt.Errorf("failed to query contest problems: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p contest.Problem
		var testsJson []byte
		err := rows.Scan(&p.ID, &p.Title, &p.Points, &p.CpuLimMs, &p.MemLimKiB,
			&testsJson, &p.Submissions, &p.Accepted)
		if err != nil {
			return fmt.Errorf("failed to scan contest problem: %w", err)
		}
		var tests []testCaseRow
		if err := json.Unmarshal(testsJson, &tests); err != nil {
			return fmt.Errorf("failed to unmarshal test cases: %w", err)
		}
		p.Tests = make([]contest.TestCase, len(tests))
		for i, tc := range tests {
			p.Tests[i] = contest.TestCase{Input: tc.Input, Expected: tc.Expected, Hidden: tc.Hidden}
		}
		c.Problems = append(c.Problems, p)
	}
	return rows.Err()
}

func (r *pgContestRepo) loadParticipants(ctx context.Context, c *contest.Contest) error {
	rows, err := r.pool.Query(ctx, `
		SELECT user_uuid, username, rating, joined_at
		FROM contest_participants WHERE contest_uuid = $1 ORDER BY joined_at
	`, c.UUID)
	if err != nil {
		return fmt.Errorf("failed to query contest participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p contest.Participant
		if err := rows.Scan(&p.UserUUID, &p.Username, &p.Rating, &p.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan contest participant: %w", err)
		}
		c.Participants = append(c.Participants, p)
	}
	return rows.Err()
}

func (r *pgContestRepo) loadRatingChanges(ctx context.Context, c *contest.Contest) error {
	rows, err := r.pool.Query(ctx, `
		SELECT user_uuid, delta, new_rating, applied_at
		FROM contest_rating_changes WHERE contest_uuid = $1
	`, c.UUID)
	if err != nil {
		return fmt.Errorf("failed to query rating changes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc contest.RatingChange
		if err := rows.Scan(&rc.UserUUID, &rc.Delta, &rc.NewRating, &rc.AppliedAt); err != nil {
			return fmt.Errorf("failed to scan rating change: %w", err)
		}
		c.RatingChanges = append(c.RatingChanges, rc)
	}
	return rows.Err()
}

func (r *pgContestRepo) List(ctx context.Context) ([]contest.Contest, error) {
	rows, err := r.pool.Query(ctx, `SELECT uuid FROM contests ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contests: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan contest uuid: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res := make([]contest.Contest, 0, len(ids))
	for _, id := range ids {
		c, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

// BumpProblemCounters is a single atomic update; acceptance percentage
// is always derived on read from these counters.
func (r *pgContestRepo) BumpProblemCounters(ctx context.Context, contestID uuid.UUID, problemID string, accepted bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contest_problems
		SET submissions = submissions + 1,
			accepted = accepted + CASE WHEN $3 THEN 1 ELSE 0 END
		WHERE contest_uuid = $1 AND id = $2
	`, contestID, problemID, accepted)
	if err != nil {
		return fmt.Errorf("failed to bump problem counters: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contest.ErrProblemNotFound(problemID)
	}
	return nil
}
