package hackathon

import (
	"context"
	"fmt"
	"time"

	"github.com/develevate/backend/logger"
	"github.com/google/uuid"
)

// HackathonSrvc exposes the hackathon lifecycle: creation, team
// management, project submissions and voting.
type HackathonSrvc struct {
	repo Repo
}

func NewHackathonSrvc(repo Repo) *HackathonSrvc {
	return &HackathonSrvc{repo: repo}
}

type CreateHackathonParams struct {
	Title                string
	StartTime            time.Time
	EndTime              time.Time
	JudgingEndTime       time.Time
	RegistrationDeadline time.Time
	MinTeamSize          int
	MaxTeamSize          int
	CreatedBy            uuid.UUID
}

func (s *HackathonSrvc) CreateHackathon(ctx context.Context, p CreateHackathonParams) (Hackathon, error) {
	if p.Title == "" {
		return Hackathon{}, ErrEmptyTitle()
	}
	if !p.StartTime.Before(p.EndTime) || !p.EndTime.Before(p.JudgingEndTime) {
		return Hackathon{}, ErrInvalidTimeWindow()
	}
	if p.MinTeamSize <= 0 {
		p.MinTeamSize = 1
	}
	if p.MaxTeamSize < p.MinTeamSize {
		p.MaxTeamSize = p.MinTeamSize
	}
	h := Hackathon{
		UUID:                 uuid.New(),
		Title:                p.Title,
		StartTime:            p.StartTime,
		EndTime:              p.EndTime,
		JudgingEndTime:       p.JudgingEndTime,
		RegistrationDeadline: p.RegistrationDeadline,
		MinTeamSize:          p.MinTeamSize,
		MaxTeamSize:          p.MaxTeamSize,
		CreatedBy:            p.CreatedBy,
		CreatedAt:            time.Now(),
	}
	if err := s.repo.Store(ctx, h); err != nil {
		return Hackathon{}, fmt.Errorf("failed to store hackathon: %w", err)
	}
	logger.FromContext(ctx).Info("hackathon created",
		"hackathon_id", h.UUID, "title", h.Title)
	return h, nil
}

func (s *HackathonSrvc) GetHackathon(ctx context.Context, id uuid.UUID) (Hackathon, error) {
	return s.repo.Get(ctx, id)
}

func (s *HackathonSrvc) ListHackathons(ctx context.Context) ([]Hackathon, error) {
	return s.repo.List(ctx)
}

// CreateTeam registers a new team with a fresh invite code, unique
// within the hackathon.
func (s *HackathonSrvc) CreateTeam(ctx context.Context, hackathonID uuid.UUID, name string, creator uuid.UUID) (Team, error) {
	h, err := s.repo.Get(ctx, hackathonID)
	if err != nil {
		return Team{}, err
	}
	if !h.RegistrationOpen(time.Now()) {
		return Team{}, ErrRegistrationClosed()
	}
	for _, t := range h.Teams {
		if t.HasMember(creator) {
			return Team{}, ErrAlreadyMember()
		}
	}

	code := NewInviteCode()
	for h.TeamByInviteCode(code) != nil {
		code = NewInviteCode()
	}

	team := Team{
		UUID:       uuid.New(),
		Name:       name,
		InviteCode: code,
		Members:    []uuid.UUID{creator},
		CreatedAt:  time.Now(),
	}
	h.Teams = append(h.Teams, team)
	if !h.IsParticipant(creator) {
		h.Participants = append(h.Participants, Participant{UserUUID: creator, JoinedAt: time.Now()})
	}
	if err := s.repo.Store(ctx, h); err != nil {
		return Team{}, fmt.Errorf("failed to store hackathon: %w", err)
	}
	return team, nil
}

// JoinTeam adds the user to the team matching the invite code.
func (s *HackathonSrvc) JoinTeam(ctx context.Context, hackathonID uuid.UUID, inviteCode string, userUUID uuid.UUID) (Team, error) {
	h, err := s.repo.Get(ctx, hackathonID)
	if err != nil {
		return Team{}, err
	}
	if !h.RegistrationOpen(time.Now()) {
		return Team{}, ErrRegistrationClosed()
	}
	team := h.TeamByInviteCode(inviteCode)
	if team == nil {
		return Team{}, ErrInvalidInviteCode()
	}
	for _, t := range h.Teams {
		if t.HasMember(userUUID) {
			return Team{}, ErrAlreadyMember()
		}
	}
	if len(team.Members) >= h.MaxTeamSize {
		return Team{}, ErrTeamFull()
	}
	team.Members = append(team.Members, userUUID)
	if !h.IsParticipant(userUUID) {
		h.Participants = append(h.Participants, Participant{UserUUID: userUUID, JoinedAt: time.Now()})
	}
	if err := s.repo.Store(ctx, h); err != nil {
		return Team{}, fmt.Errorf("failed to store hackathon: %w", err)
	}
	return *team, nil
}

// FinalizeRegistration checks every team against the size bounds. It is
// called once registration closes; undersized and oversized teams make
// it fail.
func (s *HackathonSrvc) FinalizeRegistration(ctx context.Context, hackathonID uuid.UUID) error {
	h, err := s.repo.Get(ctx, hackathonID)
	if err != nil {
		return err
	}
	for _, t := range h.Teams {
		size := len(t.Members)
		if size < h.MinTeamSize || size > h.MaxTeamSize {
			return ErrTeamSizeOutOfBounds(t.Name, size, h.MinTeamSize, h.MaxTeamSize)
		}
	}
	return nil
}

type SubmitProjectParams struct {
	HackathonID uuid.UUID
	TeamID      *uuid.UUID
	UserUUID    *uuid.UUID
	Title       string
	Description string
	RepoURL     string
	DemoURL     *string
}

// SubmitProject records a project entry during the active window.
func (s *HackathonSrvc) SubmitProject(ctx context.Context, p SubmitProjectParams) (Submission, error) {
	h, err := s.repo.Get(ctx, p.HackathonID)
	if err != nil {
		return Submission{}, err
	}
	if h.Status(time.Now()) != StatusActive {
		return Submission{}, ErrSubmissionWindowClosed()
	}
	if !ValidRepoURL(p.RepoURL) {
		return Submission{}, ErrInvalidRepoURL()
	}
	if p.TeamID != nil && h.Team(*p.TeamID) == nil {
		return Submission{}, ErrTeamNotFound()
	}

	entry := Submission{
		UUID:        uuid.New(),
		HackathonID: p.HackathonID,
		TeamID:      p.TeamID,
		UserUUID:    p.UserUUID,
		Title:       p.Title,
		Description: p.Description,
		RepoURL:     p.RepoURL,
		DemoURL:     p.DemoURL,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.StoreSubmission(ctx, entry); err != nil {
		return Submission{}, fmt.Errorf("failed to store hackathon submission: %w", err)
	}
	return entry, nil
}

// Vote casts the user's single vote for a submission. Voting for your
// own entry, solo or through team membership, fails with ErrSelfVote;
// the second vote by the same user fails with ErrAlreadyVoted.
func (s *HackathonSrvc) Vote(ctx context.Context, submissionID uuid.UUID, userUUID uuid.UUID) error {
	entry, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return err
	}
	own, err := s.ownsSubmission(ctx, entry, userUUID)
	if err != nil {
		return err
	}
	if own {
		return ErrSelfVote()
	}
	if err := s.repo.AddVote(ctx, submissionID, userUUID); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("vote recorded",
		"submission_id", submissionID, "user_id", userUUID)
	return nil
}

// Unvote withdraws the user's vote so it can be recast elsewhere.
func (s *HackathonSrvc) Unvote(ctx context.Context, submissionID uuid.UUID, userUUID uuid.UUID) error {
	if err := s.repo.RemoveVote(ctx, submissionID, userUUID); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("vote withdrawn",
		"submission_id", submissionID, "user_id", userUUID)
	return nil
}

func (s *HackathonSrvc) ownsSubmission(ctx context.Context, entry Submission, userUUID uuid.UUID) (bool, error) {
	if entry.UserUUID != nil {
		return *entry.UserUUID == userUUID, nil
	}
	if entry.TeamID == nil {
		return false, nil
	}
	h, err := s.repo.Get(ctx, entry.HackathonID)
	if err != nil {
		return false, err
	}
	team := h.Team(*entry.TeamID)
	return team != nil && team.HasMember(userUUID), nil
}

// VoteLeaderboard lists the hackathon's submissions by votes.
func (s *HackathonSrvc) VoteLeaderboard(ctx context.Context, hackathonID uuid.UUID) ([]Submission, error) {
	if _, err := s.repo.Get(ctx, hackathonID); err != nil {
		return nil, err
	}
	return s.repo.ListSubmissions(ctx, hackathonID)
}
