package http

import (
	"net/http"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

func (httpserver *HttpServer) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	contestID, err := parseUuidParam(r, "contestId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	rows, err := httpserver.contestSrvc.Leaderboard(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapLeaderboard(rows))
}
