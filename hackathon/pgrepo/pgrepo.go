package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/develevate/backend/hackathon"
	"github.com/develevate/backend/logger"
)

type pgHackathonRepo struct {
	pool *pgxpool.Pool
}

func NewPgHackathonRepo(pool *pgxpool.Pool) *pgHackathonRepo {
	return &pgHackathonRepo{pool: pool}
}

func (r *pgHackathonRepo) Store(ctx context.Context, h hackathon.Hackathon) error {
	log := logger.FromContext(ctx)
	log.Debug("storing hackathon", "hackathon_id", h.UUID)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO hackathons (
			uuid, title, start_time, end_time, judging_end_time,
			registration_deadline, min_team_size, max_team_size,
			created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (uuid) DO UPDATE SET
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			judging_end_time = EXCLUDED.judging_end_time,
			registration_deadline = EXCLUDED.registration_deadline,
			min_team_size = EXCLUDED.min_team_size,
			max_team_size = EXCLUDED.max_team_size
	`,
		h.UUID, h.Title, h.StartTime, h.EndTime, h.JudgingEndTime,
		h.RegistrationDeadline, h.MinTeamSize, h.MaxTeamSize,
		h.CreatedBy, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert hackathon: %w", err)
	}

	deleteQueries := []string{
		`DELETE FROM hackathon_team_members WHERE team_uuid IN
			(SELECT uuid FROM hackathon_teams WHERE hackathon_uuid = $1)`,
		`DELETE FROM hackathon_teams WHERE hackathon_uuid = $1`,
		`DELETE FROM hackathon_participants WHERE hackathon_uuid = $1`,
	}
	for _, query := range deleteQueries {
		if _, err := tx.Exec(ctx, query, h.UUID); err != nil {
			return fmt.Errorf("failed to delete existing hackathon data: %w", err)
		}
	}

	for _, p := range h.Participants {
		_, err = tx.Exec(ctx, `
			INSERT INTO hackathon_participants (hackathon_uuid, user_uuid, username, joined_at)
			VALUES ($1, $2, $3, $4)
		`, h.UUID, p.UserUUID, p.Username, p.JoinedAt)
		if err != nil {
			return fmt.Errorf("failed to insert hackathon participant: %w", err)
		}
	}

	for _, t := range h.Teams {
		_, err = tx.Exec(ctx, `
			INSERT INTO hackathon_teams (uuid, hackathon_uuid, name, invite_code, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, t.UUID, h.UUID, t.Name, t.InviteCode, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert hackathon team: %w", err)
		}
		for i, m := range t.Members {
			_, err = tx.Exec(ctx, `
				INSERT INTO hackathon_team_members (team_uuid, user_uuid, ord)
				VALUES ($1, $2, $3)
			`, t.UUID, m, i)
			if err != nil {
				return fmt.Errorf("failed to insert team member: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *pgHackathonRepo) Get(ctx context.Context, id uuid.UUID) (hackathon.Hackathon, error) {
	var h hackathon.Hackathon
	err := r.pool.QueryRow(ctx, `
		SELECT uuid, title, start_time, end_time, judging_end_time,
			registration_deadline, min_team_size, max_team_size,
			created_by, created_at
		FROM hackathons WHERE uuid = $1
	`, id).Scan(
		&h.UUID, &h.Title, &h.StartTime, &h.EndTime, &h.JudgingEndTime,
		&h.RegistrationDeadline, &h.MinTeamSize, &h.MaxTeamSize,
		&h.CreatedBy, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hackathon.Hackathon{}, hackathon.ErrHackathonNotFound()
		}
		return hackathon.Hackathon{}, fmt.Errorf("failed to query hackathon: %w", err)
	}

	if err := r.loadParticipants(ctx, &h); err != nil {
		return hackathon.Hackathon{}, err
	}
	if err := r.loadTeams(ctx, &h); err != nil {
		return hackathon.Hackathon{}, err
	}
	return h, nil
}

func (r *pgHackathonRepo) loadParticipants(ctx context.Context, h *hackathon.Hackathon) error {
	rows, err := r.pool.Query(ctx, `
		SELECT user_uuid, username, joined_at
		FROM hackathon_participants WHERE hackathon_uuid = $1 ORDER BY joined_at
	`, h.UUID)
	if err != nil {
		return fmt.Errorf("failed to query hackathon participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p hackathon.Participant
		if err := rows.Scan(&p.UserUUID, &p.Username, &p.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan hackathon participant: %w", err)
		}
		h.Participants = append(h.Participants, p)
	}
	return rows.Err()
}

func (r *pgHackathonRepo) loadTeams(ctx context.Context, h *hackathon.Hackathon) error {
	rows, err := r.pool.Query(ctx, `
		SELECT uuid, name, invite_code, created_at
		FROM hackathon_teams WHERE hackathon_uuid = $1 ORDER BY created_at
	`, h.UUID)
	if err != nil {
		return fmt.Errorf("failed to query hackathon teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t hackathon.Team
		if err := rows.Scan(&t.UUID, &t.Name, &t.InviteCode, &t.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan hackathon team: %w", err)
		}
		h.Teams = append(h.Teams, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range h.Teams {
		memberRows, err := r.pool.Query(ctx, `
			SELECT user_uuid FROM hackathon_team_members
			WHERE team_uuid = $1 ORDER BY ord
		`, h.Teams[i].UUID)
		if err != nil {
			return fmt.Errorf("failed to query team members: %w", err)
		}
		for memberRows.Next() {
			var m uuid.UUID
			if err := memberRows.Scan(&m); err != nil {
				memberRows.Close()
				return fmt.Errorf("failed to scan team member: %w", err)
			}
			h.Teams[i].Members = append(h.Teams[i].Members, m)
		}
		memberRows.Close()
		if err := memberRows.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *pgHackathonRepo) List(ctx context.Context) ([]hackathon.Hackathon, error) {
	rows, err := r.pool.Query(ctx, `SELECT uuid FROM hackathons ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hackathons: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan hackathon uuid: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res := make([]hackathon.Hackathon, 0, len(ids))
	for _, id := range ids {
		h, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, nil
}

func (r *pgHackathonRepo) StoreSubmission(ctx context.Context, s hackathon.Submission) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hackathon_submissions (
			uuid, hackathon_uuid, team_uuid, user_uuid, title,
			description, repo_url, demo_url, total_votes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (uuid) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			repo_url = EXCLUDED.repo_url,
			demo_url = EXCLUDED.demo_url
	`,
		s.UUID, s.HackathonID, s.TeamID, s.UserUUID, s.Title,
		s.Description, s.RepoURL, s.DemoURL, s.TotalVotes, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert hackathon submission: %w", err)
	}
	return nil
}

func (r *pgHackathonRepo) GetSubmission(ctx context.Context, id uuid.UUID) (hackathon.Submission, error) {
	var s hackathon.Submission
	err := r.pool.QueryRow(ctx, `
		SELECT uuid, hackathon_uuid, team_uuid, user_uuid, title,
			description, repo_url, demo_url, total_votes, created_at
		FROM hackathon_submissions WHERE uuid = $1
	`, id).Scan(
		&s.UUID, &s.HackathonID, &s.TeamID, &s.UserUUID, &s.Title,
		&s.Description, &s.RepoURL, &s.DemoURL, &s.TotalVotes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hackathon.Submission{}, hackathon.ErrSubmissionNotFound()
		}
		return hackathon.Submission{}, fmt.Errorf("failed to query hackathon submission: %w", err)
	}

	if err := r.loadVotes(ctx, &s); err != nil {
		return hackathon.Submission{}, err
	}
	return s, nil
}

func (r *pgHackathonRepo) loadVotes(ctx context.Context, s *hackathon.Submission) error {
	rows, err := r.pool.Query(ctx, `
		SELECT user_uuid, cast_at FROM hackathon_votes
		WHERE submission_uuid = $1 ORDER BY cast_at
	`, s.UUID)
	if err != nil {
		return fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v hackathon.Vote
		if err := rows.Scan(&v.UserUUID, &v.CastAt); err != nil {
			return fmt.Errorf("failed to scan vote: %w", err)
		}
		s.Votes = append(s.Votes, v)
	}
	return rows.Err()
}

func (r *pgHackathonRepo) ListSubmissions(ctx context.Context, hackathonID uuid.UUID) ([]hackathon.Submission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT uuid FROM hackathon_submissions
		WHERE hackathon_uuid = $1
		ORDER BY total_votes DESC, created_at
	`, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hackathon submissions: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan submission uuid: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res := make([]hackathon.Submission, 0, len(ids))
	for _, id := range ids {
		s, err := r.GetSubmission(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

// AddVote relies on the (submission_uuid, user_uuid) primary key: the
// insert either lands exactly once or conflicts, so concurrent
// duplicates from the same user leave one recorded vote. The count
// column is refreshed from the vote table in the same transaction.
func (r *pgHackathonRepo) AddVote(ctx context.Context, submissionID uuid.UUID, userUUID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO hackathon_votes (submission_uuid, user_uuid)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, submissionID, userUUID)
	if err != nil {
		// an unknown submission surfaces as a foreign key violation
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return hackathon.ErrSubmissionNotFound()
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return hackathon.ErrAlreadyVoted()
	}

	if err := r.refreshVoteCount(ctx, tx, submissionID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RemoveVote is AddVote's inverse: the delete either removes the user's
// vote or affects no row, and the count column is refreshed in the same
// transaction.
func (r *pgHackathonRepo) RemoveVote(ctx context.Context, submissionID uuid.UUID, userUUID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM hackathon_votes
		WHERE submission_uuid = $1 AND user_uuid = $2
	`, submissionID, userUUID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	deleted := tag.RowsAffected()

	if err := r.refreshVoteCount(ctx, tx, submissionID); err != nil {
		return err
	}
	if deleted == 0 {
		return hackathon.ErrNotVoted()
	}
	return tx.Commit(ctx)
}

func (r *pgHackathonRepo) refreshVoteCount(ctx context.Context, tx pgx.Tx, submissionID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		UPDATE hackathon_submissions
		SET total_votes = (SELECT count(*) FROM hackathon_votes WHERE submission_uuid = $1)
		WHERE uuid = $1
	`, submissionID)
	if err != nil {
		return fmt.Errorf("failed to update vote count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return hackathon.ErrSubmissionNotFound()
	}
	return nil
}
