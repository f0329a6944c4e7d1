package http

import (
	"net/http"
	"time"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

func (httpserver *HttpServer) listContests(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	contests, err := httpserver.contestSrvc.ListContests(r.Context())
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	now := time.Now()
	views := make([]ContestView, len(contests))
	for i, c := range contests {
		views[i] = mapContest(c, now)
	}

	httpjson.WriteSuccessJson(w, views)
}
