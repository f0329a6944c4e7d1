package http

import (
	"net/http"
	"time"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

func (httpserver *HttpServer) getContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	contestID, err := parseUuidParam(r, "contestId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	c, err := httpserver.contestSrvc.GetContest(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapContest(c, time.Now()))
}
