package http

import (
	"net/http"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

type registerForContestRequest struct {
	Rating int `json:"rating"`
}

func (httpserver *HttpServer) registerForContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	claims, userUuid, err := requireAuth(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	contestID, err := parseUuidParam(r, "contestId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var req registerForContestRequest
	if err := decodeJsonBody(r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	err = httpserver.contestSrvc.Register(r.Context(), contestID, userUuid, claims.Username, req.Rating)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, nil)
}
