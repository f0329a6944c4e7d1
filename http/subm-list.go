package http

import (
	"net/http"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

func (httpserver *HttpServer) listSubmissions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	contestID, err := parseUuidParam(r, "contestId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	subms, err := httpserver.submRepo.ListByContest(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	views := make([]SubmissionView, len(subms))
	for i, s := range subms {
		views[i] = mapSubmission(s, nil, false)
	}

	httpjson.WriteSuccessJson(w, views)
}
