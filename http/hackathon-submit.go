package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/develevate/backend/hackathon"
	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

type submitProjectRequest struct {
	TeamID      *string `json:"teamId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RepoURL     string  `json:"repoUrl"`
	DemoURL     *string `json:"demoUrl"`
}

// submitProject accepts either a team entry or a solo entry. A solo
// entry is attributed to the authenticated user directly.
func (httpserver *HttpServer) submitProject(w http.ResponseWriter, r *http.Request) {
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

	var req submitProjectRequest
	if err := decodeJsonBody(r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	params := hackathon.SubmitProjectParams{
		HackathonID: hackathonID,
		Title:       req.Title,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
	}
	if req.TeamID != nil {
		teamID, err := uuid.Parse(*req.TeamID)
		if err != nil {
			httpjson.HandleError(log, w, hackathon.ErrTeamNotFound())
			return
		}
		params.TeamID = &teamID
	} else {
		params.UserUUID = &userUuid
	}

	created, err := httpserver.hackathonSrvc.SubmitProject(r.Context(), params)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, mapProjectSubmission(created))
}
