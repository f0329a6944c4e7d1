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

	"github.com/develevate/backend/logger"
	"github.com/develevate/backend/subm"
)

type pgSubmRepo struct {
	pool *pgxpool.Pool
}

func NewPgSubmRepo(pool *pgxpool.Pool) *pgSubmRepo {
	return &pgSubmRepo{pool: pool}
}

type testResultRow struct {
	Input     string `json:"input"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
	Passed    bool   `json:"passed"`
	Attempted bool   `json:"attempted"`
	CpuMs     int64  `json:"cpu_ms"`
	MemKiB    int64  `json:"mem_kib"`
	Verdict   string `json:"verdict"`
}

func (r *pgSubmRepo) Store(ctx context.Context, s subm.Submission) error {
	log := logger.FromContext(ctx)
	log.Debug("storing submission", "subm_id", s.UUID, "verdict", s.Verdict)

	results := make([]testResultRow, len(s.Results))
	for i, tr := range s.Results {
		results[i] = testResultRow{
			Input:     tr.Input,
			Expected:  tr.Expected,
			Actual:    tr.Actual,
			Passed:    tr.Passed,
			Attempted: tr.Attempted,
			CpuMs:     tr.CpuMs,
			MemKiB:    tr.MemKiB,
			Verdict:   string(tr.Verdict),
		}
	}
	resultsJson, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal test results: %w", err)
	}

	var verdict *string
	if s.Verdict != "" {
		v := string(s.Verdict)
		verdict = &v
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO submissions (
			uuid, user_uuid, contest_uuid, problem_id, code, language,
			results, verdict, stage, points, penalty_min, created_at, judged_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (uuid) DO UPDATE SET
			results = EXCLUDED.results,
			verdict = EXCLUDED.verdict,
			stage = EXCLUDED.stage,
			points = EXCLUDED.points,
			penalty_min = EXCLUDED.penalty_min,
			judged_at = EXCLUDED.judged_at
	`,
		s.UUID, s.UserUUID, s.ContestID, s.ProblemID, s.Code, s.Language,
		resultsJson, verdict, s.Stage, s.Points, s.PenaltyMin, s.CreatedAt, s.JudgedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert submission: %w", err)
	}
	return nil
}

func (r *pgSubmRepo) Get(ctx context.Context, id uuid.UUID) (subm.Submission, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT uuid, user_uuid, contest_uuid, problem_id, code, language,
			results, verdict, stage, points, penalty_min, created_at, judged_at
		FROM submissions WHERE uuid = $1
	`, id)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subm.Submission{}, subm.ErrSubmissionNotFound()
		}
		return subm.Submission{}, err
	}
	return s, nil
}

func (r *pgSubmRepo) ListByContest(ctx context.Context, contestID uuid.UUID) ([]subm.Submission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT uuid, user_uuid, contest_uuid, problem_id, code, language,
			results, verdict, stage, points, penalty_min, created_at, judged_at
		FROM submissions WHERE contest_uuid = $1 ORDER BY created_at
	`, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	res := []subm.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *pgSubmRepo) CountFailedAttempts(ctx context.Context, userUUID uuid.UUID, contestID uuid.UUID, problemID string, before time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM submissions
		WHERE user_uuid = $1 AND contest_uuid = $2 AND problem_id = $3
			AND judged_at IS NOT NULL AND verdict <> $4 AND created_at < $5
	`, userUUID, contestID, problemID, string(subm.VerdictAccepted), before).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count failed attempts: %w", err)
	}
	return count, nil
}

func scanSubmission(row pgx.Row) (subm.Submission, error) {
	var s subm.Submission
	var resultsJson []byte
	var verdict *string
	err := row.Scan(
		&s.UUID, &s.UserUUID, &s.ContestID, &s.ProblemID, &s.Code, &s.Language,
		&resultsJson, &verdict, &s.Stage, &s.Points, &s.PenaltyMin, &s.CreatedAt, &s.JudgedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subm.Submission{}, err
		}
		return subm.Submission{}, fmt.Errorf("failed to scan submission: %w", err)
	}

	var results []testResultRow
	if err := json.Unmarshal(resultsJson, &results); err != nil {
		return subm.Submission{}, fmt.Errorf("failed to unmarshal test results: %w", err)
	}
	s.Results = make([]subm.TestResult, len(results))
	for i, tr := range results {
		s.Results[i] = subm.TestResult{
			Input:     tr.Input,
			Expected:  tr.Expected,
			Actual:    tr.Actual,
			Passed:    tr.Passed,
			Attempted: tr.Attempted,
			CpuMs:     tr.CpuMs,
			MemKiB:    tr.MemKiB,
			Verdict:   subm.Verdict(tr.Verdict),
		}
	}
	if verdict != nil {
		s.Verdict = subm.Verdict(*verdict)
	}
	return s, nil
}
