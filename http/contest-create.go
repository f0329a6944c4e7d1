package http

import (
	"net/http"
	"time"

	"github.com/develevate/backend/contest"
	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

type createContestRequest struct {
	Title     string                 `json:"title"`
	StartTime time.Time              `json:"startTime"`
	EndTime   time.Time              `json:"endTime"`
	Problems  []createProblemRequest `json:"problems"`
}

type createProblemRequest struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Points    int                     `json:"points"`
	CpuLimMs  int                     `json:"cpuLimMs"`
	MemLimKiB int                     `json:"memLimKiB"`
	Tests     []createTestCaseRequest `json:"tests"`
}

type createTestCaseRequest struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Hidden   bool   `json:"hidden"`
}

func (httpserver *HttpServer) createContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	_, userUuid, err := requireAuth(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var req createContestRequest
	if err := decodeJsonBody(r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	problems := make([]contest.Problem, len(req.Problems))
	for i, p := range req.Problems {
		tests := make([]contest.TestCase, len(p.Tests))
		for j, t := range p.Tests {
			tests[j] = contest.TestCase{
				Input:    t.Input,
				Expected: t.Expected,
				Hidden:   t.Hidden,
			}
		}
		problems[i] = contest.Problem{
			ID:        p.ID,
			Title:     p.Title,
			Points:    p.Points,
			CpuLimMs:  p.CpuLimMs,
			MemLimKiB: p.MemLimKiB,
			Tests:     tests,
		}
	}

	created, err := httpserver.contestSrvc.CreateContest(r.Context(), contest.CreateContestParams{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Problems:  problems,
		CreatedBy: userUuid,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, mapContest(created, time.Now()))
}
