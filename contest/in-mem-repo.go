package contest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type inMemRepo struct {
	mu       sync.Mutex
	contests map[uuid.UUID]Contest
}

func NewInMemRepo() *inMemRepo {
	return &inMemRepo{contests: make(map[uuid.UUID]Contest)}
}

func (r *inMemRepo) Store(ctx context.Context, c Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// counters are owned by BumpProblemCounters; a stale aggregate
	// snapshot must not roll them back
	if prev, ok := r.contests[c.UUID]; ok {
		for i := range c.Problems {
			if p := prev.Problem(c.Problems[i].ID); p != nil {
				c.Problems[i].Submissions = p.Submissions
				c.Problems[i].Accepted = p.Accepted
			}
		}
	}
	r.contests[c.UUID] = c
	return nil
}

func (r *inMemRepo) Get(ctx context.Context, id uuid.UUID) (Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contests[id]
	if !ok {
		return Contest{}, ErrContestNotFound()
	}
	return c, nil
}

func (r *inMemRepo) List(ctx context.Context) ([]Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Contest, 0, len(r.contests))
	for _, c := range r.contests {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].StartTime.Before(res[j].StartTime)
	})
	return res, nil
}

func (r *inMemRepo) BumpProblemCounters(ctx context.Context, contestID uuid.UUID, problemID string, accepted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contests[contestID]
	if !ok {
		return ErrContestNotFound()
	}
	p := c.Problem(problemID)
	if p == nil {
		return ErrProblemNotFound(problemID)
	}
	p.Submissions++
	if accepted {
		p.Accepted++
	}
	r.contests[contestID] = c
	return nil
}
