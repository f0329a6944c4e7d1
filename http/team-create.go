package http

import (
	"net/http"

	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

type createTeamRequest struct {
	Name string `json:"name"`
}

// createTeam returns the invite code to the creator only; other views
// omit it.
func (httpserver *HttpServer) createTeam(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	_, userUuid, err := requireAuth(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	hackathonID, err := parseUuidParam(r, "hackathonId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var req createTeamRequest
	if err := decodeJsonBody(r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	team, err := httpserver.hackathonSrvc.CreateTeam(r.Context(), hackathonID, req.Name, userUuid)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, mapTeam(team, true))
}

type joinTeamRequest struct {
	InviteCode string `json:"inviteCode"`
}

func (httpserver *HttpServer) joinTeam(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	_, userUuid, err := requireAuth(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	hackathonID, err := parseUuidParam(r, "hackathonId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var req joinTeamRequest
	if err := decodeJsonBody(r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	team, err := httpserver.hackathonSrvc.JoinTeam(r.Context(), hackathonID, req.InviteCode, userUuid)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapTeam(team, false))
}

func (httpserver *HttpServer) finalizeRegistration(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if _, _, err := requireAuth(r); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	hackathonID, err := parseUuidParam(r, "hackathonId")
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	if err := httpserver.hackathonSrvc.FinalizeRegistration(r.Context(), hackathonID); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, nil)
}
