package hackathon

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemRepo struct {
	mu         sync.Mutex
	hackathons map[uuid.UUID]Hackathon
	subms      map[uuid.UUID]Submission
}

func NewInMemRepo() *inMemRepo {
	return &inMemRepo{
		hackathons: make(map[uuid.UUID]Hackathon),
		subms:      make(map[uuid.UUID]Submission),
	}
}

func (r *inMemRepo) Store(ctx context.Context, h Hackathon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hackathons[h.UUID] = h
	return nil
}

func (r *inMemRepo) Get(ctx context.Context, id uuid.UUID) (Hackathon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hackathons[id]
	if !ok {
		return Hackathon{}, ErrHackathonNotFound()
	}
	return h, nil
}

func (r *inMemRepo) List(ctx context.Context) ([]Hackathon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Hackathon, 0, len(r.hackathons))
	for _, h := range r.hackathons {
		res = append(res, h)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].StartTime.Before(res[j].StartTime)
	})
	return res, nil
}

func (r *inMemRepo) StoreSubmission(ctx context.Context, s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subms[s.UUID] = s
	return nil
}

func (r *inMemRepo) GetSubmission(ctx context.Context, id uuid.UUID) (Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subms[id]
	if !ok {
		return Submission{}, ErrSubmissionNotFound()
	}
	return s, nil
}

func (r *inMemRepo) ListSubmissions(ctx context.Context, hackathonID uuid.UUID) ([]Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []Submission{}
	for _, s := range r.subms {
		if s.HackathonID == hackathonID {
			res = append(res, s)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].TotalVotes != res[j].TotalVotes {
			return res[i].TotalVotes > res[j].TotalVotes
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

// AddVote checks and appends under one lock, which is what makes
// concurrent duplicate votes leave exactly one record.
func (r *inMemRepo) AddVote(ctx context.Context, submissionID uuid.UUID, userUUID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subms[submissionID]
	if !ok {
		return ErrSubmissionNotFound()
	}
	if s.HasVoteFrom(userUUID) {
		return ErrAlreadyVoted()
	}
	s.Votes = append(s.Votes, Vote{UserUUID: userUUID, CastAt: time.Now()})
	s.TotalVotes = len(s.Votes)
	r.subms[submissionID] = s
	return nil
}

func (r *inMemRepo) RemoveVote(ctx context.Context, submissionID uuid.UUID, userUUID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subms[submissionID]
	if !ok {
		return ErrSubmissionNotFound()
	}
	if !s.HasVoteFrom(userUUID) {
		return ErrNotVoted()
	}
	kept := make([]Vote, 0, len(s.Votes)-1)
	for _, v := range s.Votes {
		if v.UserUUID != userUUID {
			kept = append(kept, v)
		}
	}
	s.Votes = kept
	s.TotalVotes = len(s.Votes)
	r.subms[submissionID] = s
	return nil
}
