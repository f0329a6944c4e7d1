package subm

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemRepo struct {
	mu    sync.Mutex
	subms map[uuid.UUID]Submission
}

func NewInMemRepo() *inMemRepo {
	return &inMemRepo{subms: make(map[uuid.UUID]Submission)}
}

func (r *inMemRepo) Store(ctx context.Context, s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subms[s.UUID] = s
	return nil
}

func (r *inMemRepo) Get(ctx context.Context, id uuid.UUID) (Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subms[id]
	if !ok {
		return Submission{}, ErrSubmissionNotFound()
	}
	return s, nil
}

func (r *inMemRepo) ListByContest(ctx context.Context, contestID uuid.UUID) ([]Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []Submission{}
	for _, s := range r.subms {
		if s.ContestID == contestID {
			res = append(res, s)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (r *inMemRepo) CountFailedAttempts(ctx context.Context, userUUID uuid.UUID, contestID uuid.UUID, problemID string, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, s := range r.subms {
		if s.UserUUID == userUUID &&
			s.ContestID == contestID &&
			s.ProblemID == problemID &&
			s.JudgedAt != nil &&
			!s.Accepted() &&
			s.CreatedAt.Before(before) {
			count++
		}
	}
	return count, nil
}
