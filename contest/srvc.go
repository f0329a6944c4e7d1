package contest

import (
	"context"
	"fmt"
	"time"

	"github.com/develevate/backend/logger"
	"github.com/develevate/backend/subm"
	"github.com/google/uuid"
)

// ContestSrvc exposes contest lifecycle operations on top of a Repo.
type ContestSrvc struct {
	repo     Repo
	submRepo subm.Repo
}

func NewContestSrvc(repo Repo, submRepo subm.Repo) *ContestSrvc {
	return &ContestSrvc{repo: repo, submRepo: submRepo}
}

type CreateContestParams struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Problems  []Problem
	CreatedBy uuid.UUID
}

func (s *ContestSrvc) CreateContest(ctx context.Context, p CreateContestParams) (Contest, error) {
	if p.Title == "" {
		return Contest{}, ErrEmptyTitle()
	}
	if !p.StartTime.Before(p.EndTime) {
		return Contest{}, ErrInvalidTimeWindow()
	}

	c := Contest{
		UUID:          uuid.New(),
		Title:         p.Title,
		StartTime:     p.StartTime,
		EndTime:       p.EndTime,
		Problems:      p.Problems,
		PreviousRanks: map[uuid.UUID]int{},
		CreatedBy:     p.CreatedBy,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Store(ctx, c); err != nil {
		return Contest{}, fmt.Errorf("failed to store contest: %w", err)
	}

	logger.FromContext(ctx).Info("contest created",
		"contest_id", c.UUID, "title", c.Title)
	return c, nil
}

func (s *ContestSrvc) GetContest(ctx context.Context, id uuid.UUID) (Contest, error) {
	return s.repo.Get(ctx, id)
}

func (s *ContestSrvc) ListContests(ctx context.Context) ([]Contest, error) {
	return s.repo.List(ctx)
}

// Register adds the user to the contest's participant list.
func (s *ContestSrvc) Register(ctx context.Context, contestID uuid.UUID, userUUID uuid.UUID, username string, rating int) error {
	c, err := s.repo.Get(ctx, contestID)
	if err != nil {
		return err
	}
	if c.IsParticipant(userUUID) {
		return ErrAlreadyRegistered()
	}
	c.Participants = append(c.Participants, Participant{
		UserUUID: userUUID,
		Username: username,
		Rating:   rating,
		JoinedAt: time.Now(),
	})
	if err := s.repo.Store(ctx, c); err != nil {
		return fmt.Errorf("failed to store contest: %w", err)
	}
	return nil
}

// Leaderboard recomputes the ranking from the contest's submissions.
func (s *ContestSrvc) Leaderboard(ctx context.Context, contestID uuid.UUID) ([]Row, error) {
	if _, err := s.repo.Get(ctx, contestID); err != nil {
		return nil, err
	}
	subms, err := s.submRepo.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return ComputeLeaderboard(subms), nil
}

// Finalize freezes the results of a finished contest and writes the
// rating ledger. Fails when already finalized or still running.
func (s *ContestSrvc) Finalize(ctx context.Context, contestID uuid.UUID) (Contest, error) {
	log := logger.FromContext(ctx)

	c, err := s.repo.Get(ctx, contestID)
	if err != nil {
		return Contest{}, err
	}
	now := time.Now()
	if c.Status(now) != StatusFinished {
		return Contest{}, ErrContestNotFinished()
	}

	rows, err := s.Leaderboard(ctx, contestID)
	if err != nil {
		return Contest{}, err
	}
	if err := c.Finalize(rows, now); err != nil {
		return Contest{}, err
	}
	if err := s.repo.Store(ctx, c); err != nil {
		return Contest{}, fmt.Errorf("failed to store contest: %w", err)
	}

	log.Info("contest finalized",
		"contest_id", c.UUID, "participants", len(rows))
	return c, nil
}

// Reopen explicitly unlocks a finalized contest for re-finalization.
func (s *ContestSrvc) Reopen(ctx context.Context, contestID uuid.UUID) (Contest, error) {
	c, err := s.repo.Get(ctx, contestID)
	if err != nil {
		return Contest{}, err
	}
	if err := c.Reopen(); err != nil {
		return Contest{}, err
	}
	if err := s.repo.Store(ctx, c); err != nil {
		return Contest{}, fmt.Errorf("failed to store contest: %w", err)
	}
	logger.FromContext(ctx).Info("contest reopened", "contest_id", c.UUID)
	return c, nil
}
