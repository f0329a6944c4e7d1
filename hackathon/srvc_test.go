package hackathon_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/develevate/backend/hackathon"
	"github.com/develevate/backend/srvcerror"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	var srvcErr *srvcerror.Error
	if !errors.As(err, &srvcErr) {
		t.Fatalf("expected a service error, got %v", err)
	}
	return srvcErr.ErrorCode()
}

// activeHackathon creates a hackathon whose submission window is open
// and whose registration deadline has not passed.
func activeHackathon(t *testing.T, srvc *hackathon.HackathonSrvc, minSize, maxSize int) hackathon.Hackathon {
	t.Helper()
	h, err := srvc.CreateHackathon(context.Background(), hackathon.CreateHackathonParams{
		Title:                "Spring Hack 2026",
		StartTime:            time.Now().Add(-time.Hour),
		EndTime:              time.Now().Add(24 * time.Hour),
		JudgingEndTime:       time.Now().Add(48 * time.Hour),
		RegistrationDeadline: time.Now().Add(12 * time.Hour),
		MinTeamSize:          minSize,
		MaxTeamSize:          maxSize,
		CreatedBy:            uuid.New(),
	})
	require.NoError(t, err)
	return h
}

func TestCreateHackathonValidation(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("empty title", func(t *testing.T) {
		_, err := srvc.CreateHackathon(ctx, hackathon.CreateHackathonParams{
			StartTime:      start,
			EndTime:        start.Add(24 * time.Hour),
			JudgingEndTime: start.Add(48 * time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrEmptyTitle().ErrorCode(), errCode(t, err))
	})

	t.Run("judging must follow the event", func(t *testing.T) {
		_, err := srvc.CreateHackathon(ctx, hackathon.CreateHackathonParams{
			Title:          "Spring Hack 2026",
			StartTime:      start,
			EndTime:        start.Add(24 * time.Hour),
			JudgingEndTime: start.Add(12 * time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrInvalidTimeWindow().ErrorCode(), errCode(t, err))
	})

	t.Run("team size defaults", func(t *testing.T) {
		h, err := srvc.CreateHackathon(ctx, hackathon.CreateHackathonParams{
			Title:          "Spring Hack 2026",
			StartTime:      start,
			EndTime:        start.Add(24 * time.Hour),
			JudgingEndTime: start.Add(48 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, h.MinTeamSize)
		assert.Equal(t, 1, h.MaxTeamSize)
	})
}

func TestTeamLifecycle(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	h := activeHackathon(t, srvc, 1, 2)

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	team, err := srvc.CreateTeam(ctx, h.UUID, "gophers", alice)
	require.NoError(t, err)
	assert.Len(t, team.InviteCode, 8)
	require.Len(t, team.Members, 1)

	t.Run("creator cannot create a second team", func(t *testing.T) {
		_, err := srvc.CreateTeam(ctx, h.UUID, "rustaceans", alice)
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrAlreadyMember().ErrorCode(), errCode(t, err))
	})

	t.Run("join by invite code", func(t *testing.T) {
		joined, err := srvc.JoinTeam(ctx, h.UUID, team.InviteCode, bob)
		require.NoError(t, err)
		assert.Len(t, joined.Members, 2)
	})

	t.Run("wrong invite code", func(t *testing.T) {
		_, err := srvc.JoinTeam(ctx, h.UUID, "WRONG123", carol)
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrInvalidInviteCode().ErrorCode(), errCode(t, err))
	})

	t.Run("full team rejects another member", func(t *testing.T) {
		_, err := srvc.JoinTeam(ctx, h.UUID, team.InviteCode, carol)
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrTeamFull().ErrorCode(), errCode(t, err))
	})

	t.Run("registration finalizes when sizes fit", func(t *testing.T) {
		require.NoError(t, srvc.FinalizeRegistration(ctx, h.UUID))
	})
}

func TestFinalizeRegistrationSizeBounds(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	h := activeHackathon(t, srvc, 2, 4)

	_, err := srvc.CreateTeam(ctx, h.UUID, "solo", uuid.New())
	require.NoError(t, err)

	err = srvc.FinalizeRegistration(ctx, h.UUID)
	require.Error(t, err)
	assert.Equal(t, hackathon.ErrTeamSizeOutOfBounds("solo", 1, 2, 4).ErrorCode(), errCode(t, err))
}

func TestSubmitProject(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	h := activeHackathon(t, srvc, 1, 4)

	alice := uuid.New()
	team, err := srvc.CreateTeam(ctx, h.UUID, "gophers", alice)
	require.NoError(t, err)

	t.Run("valid team submission", func(t *testing.T) {
		entry, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
			HackathonID: h.UUID,
			TeamID:      &team.UUID,
			Title:       "Realtime Whiteboard",
			Description: "collaborative drawing over websockets",
			RepoURL:     "https://github.com/gophers/whiteboard",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, entry.UUID)
	})

	t.Run("solo submission", func(t *testing.T) {
		bob := uuid.New()
		entry, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
			HackathonID: h.UUID,
			UserUUID:    &bob,
			Title:       "CLI Flashcards",
			Description: "spaced repetition in the terminal",
			RepoURL:     "https://github.com/bob/flashcards",
		})
		require.NoError(t, err)
		require.NotNil(t, entry.UserUUID)
		assert.Nil(t, entry.TeamID)
	})

	t.Run("rejects a non-github url", func(t *testing.T) {
		_, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
			HackathonID: h.UUID,
			TeamID:      &team.UUID,
			Title:       "Whiteboard",
			RepoURL:     "https://example.com/repo",
		})
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrInvalidRepoURL().ErrorCode(), errCode(t, err))
	})

	t.Run("rejects an unknown team", func(t *testing.T) {
		other := uuid.New()
		_, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
			HackathonID: h.UUID,
			TeamID:      &other,
			Title:       "Whiteboard",
			RepoURL:     "https://github.com/gophers/whiteboard",
		})
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrTeamNotFound().ErrorCode(), errCode(t, err))
	})
}

func TestSubmitProjectWindowClosed(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()

	ended, err := srvc.CreateHackathon(ctx, hackathon.CreateHackathonParams{
		Title:          "Winter Hack 2025",
		StartTime:      time.Now().Add(-72 * time.Hour),
		EndTime:        time.Now().Add(-48 * time.Hour),
		JudgingEndTime: time.Now().Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
		HackathonID: ended.UUID,
		Title:       "Too Late",
		RepoURL:     "https://github.com/late/entry",
	})
	require.Error(t, err)
	assert.Equal(t, hackathon.ErrSubmissionWindowClosed().ErrorCode(), errCode(t, err))
}

func TestVoteOncePerUser(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	h := activeHackathon(t, srvc, 1, 4)

	alice := uuid.New()
	entry, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
		HackathonID: h.UUID,
		UserUUID:    &alice,
		Title:       "Realtime Whiteboard",
		RepoURL:     "https://github.com/gophers/whiteboard",
	})
	require.NoError(t, err)

	voter := uuid.New()
	require.NoError(t, srvc.Vote(ctx, entry.UUID, voter))

	err = srvc.Vote(ctx, entry.UUID, voter)
	require.Error(t, err)
	assert.Equal(t, hackathon.ErrAlreadyVoted().ErrorCode(), errCode(t, err))

	leaderboard, err := srvc.VoteLeaderboard(ctx, h.UUID)
	require.NoError(t, err)
	require.Len(t, leaderboard, 1)
	assert.Equal(t, 1, leaderboard[0].TotalVotes)
}

func TestVoteForOwnSubmissionRejected(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	h := activeHackathon(t, srvc, 1, 4)

	t.Run("solo owner", func(t *testing.T) {
		alice := uuid.New()
		entry, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
			HackathonID: h.UUID,
			UserUUID:    &alice,
			Title:       "CLI Flashcards",
			RepoURL:     "https://github.com/alice/flashcards",
		})
		require.NoError(t, err)

		err = srvc.Vote(ctx, entry.UUID, alice)
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrSelfVote().ErrorCode(), errCode(t, err))
	})

	t.Run("team member", func(t *testing.T) {
		bob := uuid.New()
		carol := uuid.New()
		team, err := srvc.CreateTeam(ctx, h.UUID, "gophers", bob)
		require.NoError(t, err)
		_, err = srvc.JoinTeam(ctx, h.UUID, team.InviteCode, carol)
		require.NoError(t, err)

		entry, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
			HackathonID: h.UUID,
			TeamID:      &team.UUID,
			Title:       "Realtime Whiteboard",
			RepoURL:     "https://github.com/gophers/whiteboard",
		})
		require.NoError(t, err)

		// every member of the submitting team counts as an owner
		err = srvc.Vote(ctx, entry.UUID, carol)
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrSelfVote().ErrorCode(), errCode(t, err))

		require.NoError(t, srvc.Vote(ctx, entry.UUID, uuid.New()))
	})
}

func TestUnvote(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	h := activeHackathon(t, srvc, 1, 4)

	alice := uuid.New()
	entry, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
		HackathonID: h.UUID,
		UserUUID:    &alice,
		Title:       "Realtime Whiteboard",
		RepoURL:     "https://github.com/gophers/whiteboard",
	})
	require.NoError(t, err)

	voter := uuid.New()

	t.Run("without a prior vote", func(t *testing.T) {
		err := srvc.Unvote(ctx, entry.UUID, voter)
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrNotVoted().ErrorCode(), errCode(t, err))
	})

	t.Run("withdraw and recast", func(t *testing.T) {
		require.NoError(t, srvc.Vote(ctx, entry.UUID, voter))
		require.NoError(t, srvc.Unvote(ctx, entry.UUID, voter))

		leaderboard, err := srvc.VoteLeaderboard(ctx, h.UUID)
		require.NoError(t, err)
		require.Len(t, leaderboard, 1)
		assert.Equal(t, 0, leaderboard[0].TotalVotes)

		// a withdrawn vote can be cast again
		require.NoError(t, srvc.Vote(ctx, entry.UUID, voter))
	})

	t.Run("unknown submission", func(t *testing.T) {
		err := srvc.Unvote(ctx, uuid.New(), voter)
		require.Error(t, err)
		assert.Equal(t, hackathon.ErrSubmissionNotFound().ErrorCode(), errCode(t, err))
	})
}

// Concurrent duplicate votes must collapse to exactly one recorded vote.
func TestVoteConcurrentDuplicates(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	h := activeHackathon(t, srvc, 1, 4)

	alice := uuid.New()
	entry, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
		HackathonID: h.UUID,
		UserUUID:    &alice,
		Title:       "Realtime Whiteboard",
		RepoURL:     "https://github.com/gophers/whiteboard",
	})
	require.NoError(t, err)

	voter := uuid.New()
	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = srvc.Vote(ctx, entry.UUID, voter)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	leaderboard, err := srvc.VoteLeaderboard(ctx, h.UUID)
	require.NoError(t, err)
	require.Len(t, leaderboard, 1)
	assert.Equal(t, 1, leaderboard[0].TotalVotes)
}

func TestVoteLeaderboardOrder(t *testing.T) {
	srvc := hackathon.NewHackathonSrvc(hackathon.NewInMemRepo())
	ctx := context.Background()
	h := activeHackathon(t, srvc, 1, 4)

	submitEntry := func(title string) hackathon.Submission {
		owner := uuid.New()
		entry, err := srvc.SubmitProject(ctx, hackathon.SubmitProjectParams{
			HackathonID: h.UUID,
			UserUUID:    &owner,
			Title:       title,
			RepoURL:     "https://github.com/owner/" + title,
		})
		require.NoError(t, err)
		return entry
	}

	first := submitEntry("alpha")
	second := submitEntry("beta")

	for i := 0; i < 3; i++ {
		require.NoError(t, srvc.Vote(ctx, second.UUID, uuid.New()))
	}
	require.NoError(t, srvc.Vote(ctx, first.UUID, uuid.New()))

	leaderboard, err := srvc.VoteLeaderboard(ctx, h.UUID)
	require.NoError(t, err)
	require.Len(t, leaderboard, 2)
	assert.Equal(t, second.UUID, leaderboard[0].UUID)
	assert.Equal(t, 3, leaderboard[0].TotalVotes)
	assert.Equal(t, first.UUID, leaderboard[1].UUID)
	assert.Equal(t, 1, leaderboard[1].TotalVotes)
}
