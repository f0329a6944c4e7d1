package http

import (
	"net/http"
	"time"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

func (httpserver *HttpServer) finalizeContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if _, _, err := requireAuth(r); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	contestID, err := parseUuidParam(r, "contestId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	c, err := httpserver.contestSrvc.Finalize(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapContest(c, time.Now()))
}

func (httpserver *HttpServer) reopenContest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if _, _, err := requireAuth(r); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	contestID, err := parseUuidParam(r, "contestId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	c, err := httpserver.contestSrvc.Reopen(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapContest(c, time.Now()))
}
