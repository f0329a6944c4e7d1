package http

import (
	"net/http"
	"time"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

func (httpserver *HttpServer) listHackathons(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	hackathons, err := httpserver.hackathonSrvc.ListHackathons(r.Context())
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	now := time.Now()
	views := make([]HackathonView, len(hackathons))
	for i, h := range hackathons {
		views[i] = mapHackathon(h, now)
	}

	httpjson.WriteSuccessJson(w, views)
}

func (httpserver *HttpServer) getHackathon(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	hackathonID, err := parseUuidParam(r, "hackathonId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	h, err := httpserver.hackathonSrvc.GetHackathon(r.Context(), hackathonID)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapHackathon(h, time.Now()))
}
