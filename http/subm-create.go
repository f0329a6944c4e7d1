package http

import (
	"net/http"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/judge"
	"github.com/develevate/backend/logger"
)

type createSubmissionRequest struct {
	ProblemID string `json:"problemId"`
	Code      string `json:"code"`
	Language  string `json:"language"`
}

// createSubmission judges the code synchronously; the response carries
// the final verdict. Live status updates go out over the ws room.
func (httpserver *HttpServer) createSubmission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	_, userUuid, err := requireAuth(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	contestID, err := parseUuidParam(r, "contestId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var req createSubmissionRequest
	if err := decodeJsonBody(r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	judged, err := httpserver.judgeSrvc.Submit(r.Context(), judge.SubmitParams{
		UserUUID:  userUuid,
		ContestID: contestID,
		ProblemID: req.ProblemID,
		Code:      req.Code,
		Language:  req.Language,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	problem := httpserver.lookupProblem(r, contestID, judged.ProblemID)
	httpjson.WriteCreatedJson(w, mapSubmission(judged, problem, true))
}
