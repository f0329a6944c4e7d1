package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/develevate/backend/contest"
	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

func (httpserver *HttpServer) getSubmission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	submID, err := parseUuidParam(r, "submId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	s, err := httpserver.submRepo.Get(r.Context(), submID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	problem := httpserver.lookupProblem(r, s.ContestID, s.ProblemID)
	httpjson.WriteSuccessJson(w, mapSubmission(s, problem, true))
}

// lookupProblem fetches the contest problem for hidden test redaction.
// A lookup failure redacts everything rather than failing the request.
func (httpserver *HttpServer) lookupProblem(r *http.Request, contestID uuid.UUID, problemID string) *contest.Problem {
	c, err := httpserver.contestSrvc.GetContest(r.Context(), contestID)
	if err != nil {
		return nil
	}
	return c.Problem(problemID)
}
