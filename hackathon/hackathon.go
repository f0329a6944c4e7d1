package hackathon

import (
	"time"

	"github.com/google/uuid"
)

// Status is derived from the clock and the hackathon's windows, never
// read back from storage as authoritative.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusJudging  Status = "judging"
	StatusEnded    Status = "ended"
)

// DeriveStatus maps the current time onto the hackathon windows. The
// judging phase runs from the end of the building window to judgingEnd.
func DeriveStatus(now time.Time, start, end, judgingEnd time.Time) Status {
	if now.Before(start) {
		return StatusUpcoming
	}
	if now.Before(end) {
		return StatusActive
	}
	if now.Before(judgingEnd) {
		return StatusJudging
	}
	return StatusEnded
}

type Participant struct {
	UserUUID uuid.UUID
	Username string
	JoinedAt time.Time
}

// Hackathon owns its teams and participant list. Team sizes are checked
// against the min/max bounds when registration is finalized.
type Hackathon struct {
	UUID  uuid.UUID
	Title string

	StartTime            time.Time
	EndTime              time.Time
	JudgingEndTime       time.Time
	RegistrationDeadline time.Time

	MinTeamSize int
	MaxTeamSize int

	Participants []Participant
	Teams        []Team

	CreatedBy uuid.UUID
	CreatedAt time.Time
}

func (h *Hackathon) Status(now time.Time) Status {
	return DeriveStatus(now, h.StartTime, h.EndTime, h.JudgingEndTime)
}

// RegistrationOpen reports whether new participants and teams may still
// join.
func (h *Hackathon) RegistrationOpen(now time.Time) bool {
	return now.Before(h.RegistrationDeadline)
}

// Team returns the team with the given id, or nil.
func (h *Hackathon) Team(id uuid.UUID) *Team {
	for i := range h.Teams {
		if h.Teams[i].UUID == id {
			return &h.Teams[i]
		}
	}
	return nil
}

// TeamByInviteCode returns the team with the given invite code, or nil.
func (h *Hackathon) TeamByInviteCode(code string) *Team {
	for i := range h.Teams {
		if h.Teams[i].InviteCode == code {
			return &h.Teams[i]
		}
	}
	return nil
}

func (h *Hackathon) IsParticipant(userUUID uuid.UUID) bool {
	for _, p := range h.Participants {
		if p.UserUUID == userUUID {
			return true
		}
	}
	return false
}
