package pgrepo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peterldowns/pgtestdb"
	"github.com/peterldowns/pgtestdb/migrators/golangmigrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/develevate/backend/hackathon"
	"github.com/develevate/backend/srvcerror"
)

// NewDB returns a connection pool to a unique and isolated test
// database, fully migrated and ready for testing
func NewDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	conf := pgtestdb.Config{
		DriverName: "pgx",
		User:       "develevate", // local dev pg user
		Password:   "develevate", // local dev pg password
		Host:       "localhost",
		Port:       "5433",
		Options:    "sslmode=disable",
	}
	gm := golangmigrator.New("../../migrate")
	config := pgtestdb.Custom(t, conf, gm)

	pool, err := pgxpool.New(ctx, config.URL())
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func sampleHackathon() hackathon.Hackathon {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	alice := uuid.New()
	return hackathon.Hackathon{
		UUID:                 uuid.New(),
		Title:                "Spring Hack 2026",
		StartTime:            start,
		EndTime:              start.Add(48 * time.Hour),
		JudgingEndTime:       start.Add(72 * time.Hour),
		RegistrationDeadline: start.Add(24 * time.Hour),
		MinTeamSize:          1,
		MaxTeamSize:          4,
		Participants: []hackathon.Participant{
			{UserUUID: alice, Username: "alice", JoinedAt: start},
		},
		Teams: []hackathon.Team{
			{
				UUID:       uuid.New(),
				Name:       "gophers",
				InviteCode: "ABCD1234",
				Members:    []uuid.UUID{alice},
				CreatedAt:  start,
			},
		},
		CreatedBy: uuid.New(),
		CreatedAt: start.Add(-time.Hour),
	}
}

func TestPgHackathonRepoRoundTrip(t *testing.T) {
	pool := NewDB(t)
	repo := NewPgHackathonRepo(pool)
	ctx := context.Background()

	h := sampleHackathon()
	require.NoError(t, repo.Store(ctx, h))

	got, err := repo.Get(ctx, h.UUID)
	require.NoError(t, err)
	assert.Equal(t, h.Title, got.Title)
	assert.Equal(t, 4, got.MaxTeamSize)
	require.Len(t, got.Teams, 1)
	assert.Equal(t, "ABCD1234", got.Teams[0].InviteCode)
	require.Len(t, got.Teams[0].Members, 1)
	require.Len(t, got.Participants, 1)

	_, err = repo.Get(ctx, uuid.New())
	require.Error(t, err)
}

func storeSampleSubmission(t *testing.T, repo *pgHackathonRepo, h hackathon.Hackathon) hackathon.Submission {
	t.Helper()
	owner := uuid.New()
	entry := hackathon.Submission{
		UUID:        uuid.New(),
		HackathonID: h.UUID,
		UserUUID:    &owner,
		Title:       "Realtime Whiteboard",
		Description: "collaborative drawing over websockets",
		RepoURL:     "https://github.com/gophers/whiteboard",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.StoreSubmission(context.Background(), entry))
	return entry
}

func TestPgHackathonRepoVoteOnce(t *testing.T) {
	pool := NewDB(t)
	repo := NewPgHackathonRepo(pool)
	ctx := context.Background()

	h := sampleHackathon()
	require.NoError(t, repo.Store(ctx, h))
	entry := storeSampleSubmission(t, repo, h)

	voter := uuid.New()
	require.NoError(t, repo.AddVote(ctx, entry.UUID, voter))

	err := repo.AddVote(ctx, entry.UUID, voter)
	require.Error(t, err)

	got, err := repo.GetSubmission(ctx, entry.UUID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalVotes)
	assert.True(t, got.HasVoteFrom(voter))
}

func TestPgHackathonRepoVoteUnknownSubmission(t *testing.T) {
	pool := NewDB(t)
	repo := NewPgHackathonRepo(pool)
	ctx := context.Background()

	// the foreign key violation maps to the domain not-found error
	err := repo.AddVote(ctx, uuid.New(), uuid.New())
	require.Error(t, err)
	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, hackathon.ErrSubmissionNotFound().ErrorCode(), srvcErr.ErrorCode())
}

func TestPgHackathonRepoRemoveVote(t *testing.T) {
	pool := NewDB(t)
	repo := NewPgHackathonRepo(pool)
	ctx := context.Background()

	h := sampleHackathon()
	require.NoError(t, repo.Store(ctx, h))
	entry := storeSampleSubmission(t, repo, h)

	voter := uuid.New()

	err := repo.RemoveVote(ctx, entry.UUID, voter)
	require.Error(t, err)
	var srvcErr *srvcerror.Error
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, hackathon.ErrNotVoted().ErrorCode(), srvcErr.ErrorCode())

	require.NoError(t, repo.AddVote(ctx, entry.UUID, voter))
	require.NoError(t, repo.RemoveVote(ctx, entry.UUID, voter))

	got, err := repo.GetSubmission(ctx, entry.UUID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalVotes)
	assert.False(t, got.HasVoteFrom(voter))

	// a withdrawn vote can be cast again
	require.NoError(t, repo.AddVote(ctx, entry.UUID, voter))
}

// The primary key on (submission_uuid, user_uuid) is what makes
// concurrent duplicates collapse to a single row.
func TestPgHackathonRepoConcurrentVotes(t *testing.T) {
	pool := NewDB(t)
	repo := NewPgHackathonRepo(pool)
	ctx := context.Background()

	h := sampleHackathon()
	require.NoError(t, repo.Store(ctx, h))
	entry := storeSampleSubmission(t, repo, h)

	voter := uuid.New()
	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.AddVote(ctx, entry.UUID, voter)
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

	got, err := repo.GetSubmission(ctx, entry.UUID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalVotes)
}

func TestPgHackathonRepoListSubmissionsByVotes(t *testing.T) {
	pool := NewDB(t)
	repo := NewPgHackathonRepo(pool)
	ctx := context.Background()

	h := sampleHackathon()
	require.NoError(t, repo.Store(ctx, h))

	first := storeSampleSubmission(t, repo, h)
	second := storeSampleSubmission(t, repo, h)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AddVote(ctx, second.UUID, uuid.New()))
	}
	require.NoError(t, repo.AddVote(ctx, first.UUID, uuid.New()))

	subms, err := repo.ListSubmissions(ctx, h.UUID)
	require.NoError(t, err)
	require.Len(t, subms, 2)
	assert.Equal(t, second.UUID, subms[0].UUID)
	assert.Equal(t, 3, subms[0].TotalVotes)
	assert.Equal(t, first.UUID, subms[1].UUID)
}
