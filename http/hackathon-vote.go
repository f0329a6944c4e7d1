package http

import (
	"net/http"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

func (httpserver *HttpServer) voteForSubmission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	_, userUuid, err := requireAuth(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	submID, err := parseUuidParam(r, "submId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	if err := httpserver.hackathonSrvc.Vote(r.Context(), submID, userUuid); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, nil)
}

func (httpserver *HttpServer) withdrawVote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	_, userUuid, err := requireAuth(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	submID, err := parseUuidParam(r, "submId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	if err := httpserver.hackathonSrvc.Unvote(r.Context(), submID, userUuid); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, nil)
}

func (httpserver *HttpServer) listProjectSubmissions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	hackathonID, err := parseUuidParam(r, "hackathonId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	subms, err := httpserver.hackathonSrvc.VoteLeaderboard(r.Context(), hackathonID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	views := make([]ProjectSubmissionView, len(subms))
	for i, s := range subms {
		views[i] = mapProjectSubmission(s)
	}

	httpjson.WriteSuccessJson(w, views)
}
