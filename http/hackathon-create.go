package http

import (
	"net/http"
	"time"

	"github.com/develevate/backend/hackathon"
	"github.com/develevate/backend/httpjson"
	"github.com/develevate/backend/logger"
)

type createHackathonRequest struct {
	Title                string    `json:"title"`
	StartTime            time.Time `json:"startTime"`
	EndTime              time.Time `json:"endTime"`
	JudgingEndTime       time.Time `json:"judgingEndTime"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
	MinTeamSize          int       `json:"minTeamSize"`
	MaxTeamSize          int       `json:"maxTeamSize"`
}

func (httpserver *HttpServer) createHackathon(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	_, userUuid, err := requireAuth(r)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	var req createHackathonRequest
	if err := decodeJsonBody(r, &req); err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	created, err := httpserver.hackathonSrvc.CreateHackathon(r.Context(), hackathon.CreateHackathonParams{
		Title:                req.Title,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		JudgingEndTime:       req.JudgingEndTime,
		RegistrationDeadline: req.RegistrationDeadline,
		MinTeamSize:          req.MinTeamSize,
		MaxTeamSize:          req.MaxTeamSize,
		CreatedBy:            userUuid,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, mapHackathon(created, time.Now()))
}
