package realtime

import "time"

// server -> client event names
const (
	EventUserJoined       = "user-joined"
	EventUserLeft         = "user-left"
	EventActiveCount      = "active-count"
	EventSubmissionUpdate = "submission-update"
)

// client -> server event names
const (
	EventJoinContest    = "join-contest"
	EventLeaveContest   = "leave-contest"
	EventGetActiveCount = "get-active-count"
)

// Event is one websocket frame.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

type UserJoinedPayload struct {
	Count int `json:"count"`
}

type UserLeftPayload struct {
	Count int `json:"count"`
}

type ActiveCountPayload struct {
	ContestID string `json:"contestId"`
	Count     int    `json:"count"`
}

type SubmissionUpdatePayload struct {
	ContestID string    `json:"contestId"`
	UserID    string    `json:"userId"`
	ProblemID string    `json:"problemId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientMessage is what clients send: an event name plus the contest it
// concerns.
type ClientMessage struct {
	Name      string `json:"event"`
	ContestID string `json:"contestId"`
}

// RoomName is the logical channel scoping events to one contest's
// viewers.
func RoomName(contestID string) string {
	return "contest-" + contestID
}
