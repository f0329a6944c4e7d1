package http

import (
	"time"

	"github.com/develevate/backend/contest"
	"github.com/develevate/backend/hackathon"
	"github.com/develevate/backend/subm"
)

type ProblemView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Points      int     `json:"points"`
	CpuLimMs    int     `json:"cpuLimMs"`
	MemLimKiB   int     `json:"memLimKiB"`
	Submissions int     `json:"submissions"`
	Acceptance  float64 `json:"acceptance"`
}

type ContestView struct {
	UUID         string        `json:"uuid"`
	Title        string        `json:"title"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
	Status       string        `json:"status"`
	Problems     []ProblemView `json:"problems"`
	Participants int           `json:"participants"`
	IsFinalized  bool          `json:"isFinalized"`
}

// mapContest derives status from the clock on every read; the stored
// status column is never exposed.
func mapContest(c contest.Contest, now time.Time) ContestView {
	problems := make([]ProblemView, len(c.Problems))
	for i, p := range c.Problems {
		problems[i] = ProblemView{
			ID:          p.ID,
			Title:       p.Title,
			Points:      p.Points,
			CpuLimMs:    p.CpuLimMsOrDefault(),
			MemLimKiB:   p.MemLimKiBOrDefault(),
			Submissions: p.Submissions,
			Acceptance:  p.Acceptance(),
		}
	}
	return ContestView{
		UUID:         c.UUID.String(),
		Title:        c.Title,
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		Status:       string(c.Status(now)),
		Problems:     problems,
		Participants: len(c.Participants),
		IsFinalized:  c.IsFinalized,
	}
}

type TestResultView struct {
	Input     *string `json:"input,omitempty"`
	Expected  *string `json:"expected,omitempty"`
	Actual    *string `json:"actual,omitempty"`
	Passed    bool    `json:"passed"`
	Attempted bool    `json:"attempted"`
	CpuMs     int64   `json:"cpuMs"`
	MemKiB    int64   `json:"memKiB"`
	Verdict   string  `json:"verdict"`
}

type SubmissionView struct {
	UUID       string           `json:"uuid"`
	UserUUID   string           `json:"userUuid"`
	ContestID  string           `json:"contestId"`
	ProblemID  string           `json:"problemId"`
	Language   string           `json:"language"`
	Verdict    string           `json:"verdict"`
	Stage      string           `json:"stage"`
	Points     int              `json:"points"`
	PenaltyMin int              `json:"penaltyMin"`
	CreatedAt  time.Time        `json:"createdAt"`
	Results    []TestResultView `json:"results,omitempty"`
}

// mapSubmission redacts inputs and outputs of hidden test cases using
// the problem's test list; a nil problem redacts everything.
func mapSubmission(s subm.Submission, problem *contest.Problem, withResults bool) SubmissionView {
	view := SubmissionView{
		UUID:       s.UUID.String(),
		UserUUID:   s.UserUUID.String(),
		ContestID:  s.ContestID.String(),
		ProblemID:  s.ProblemID,
		Language:   s.Language,
		Verdict:    string(s.Verdict),
		Stage:      s.Stage,
		Points:     s.Points,
		PenaltyMin: s.PenaltyMin,
		CreatedAt:  s.CreatedAt,
	}
	if !withResults {
		return view
	}
	view.Results = make([]TestResultView, len(s.Results))
	for i, r := range s.Results {
		rv := TestResultView{
			Passed:    r.Passed,
			Attempted: r.Attempted,
			CpuMs:     r.CpuMs,
			MemKiB:    r.MemKiB,
			Verdict:   string(r.Verdict),
		}
		hidden := true
		if problem != nil && i < len(problem.Tests) {
			hidden = problem.Tests[i].Hidden
		}
		if !hidden {
			input, expected, actual := r.Input, r.Expected, r.Actual
			rv.Input = &input
			rv.Expected = &expected
			rv.Actual = &actual
		}
		view.Results[i] = rv
	}
	return view
}

type LeaderboardRowView struct {
	Rank            int        `json:"rank"`
	UserUUID        string     `json:"userUuid"`
	Points          int        `json:"points"`
	PenaltyMin      int        `json:"penaltyMin"`
	SolvedProblems  int        `json:"solvedProblems"`
	FinalAcceptedAt *time.Time `json:"finalAcceptedAt,omitempty"`
}

func mapLeaderboard(rows []contest.Row) []LeaderboardRowView {
	res := make([]LeaderboardRowView, len(rows))
	for i, r := range rows {
		view := LeaderboardRowView{
			Rank:           r.Rank,
			UserUUID:       r.UserUUID.String(),
			Points:         r.Points,
			PenaltyMin:     r.PenaltyMin,
			SolvedProblems: r.SolvedProblems,
		}
		if !r.FinalAcceptedAt.IsZero() {
			t := r.FinalAcceptedAt
			view.FinalAcceptedAt = &t
		}
		res[i] = view
	}
	return res
}

type TeamView struct {
	UUID       string   `json:"uuid"`
	Name       string   `json:"name"`
	InviteCode string   `json:"inviteCode,omitempty"`
	Members    []string `json:"members"`
}

func mapTeam(t hackathon.Team, withInviteCode bool) TeamView {
	members := make([]string, len(t.Members))
	for i, m := range t.Members {
		members[i] = m.String()
	}
	view := TeamView{
		UUID:    t.UUID.String(),
		Name:    t.Name,
		Members: members,
	}
	if withInviteCode {
		view.InviteCode = t.InviteCode
	}
	return view
}

type HackathonView struct {
	UUID                 string     `json:"uuid"`
	Title                string     `json:"title"`
	StartTime            time.Time  `json:"startTime"`
	EndTime              time.Time  `json:"endTime"`
	JudgingEndTime       time.Time  `json:"judgingEndTime"`
	RegistrationDeadline time.Time  `json:"registrationDeadline"`
	Status               string     `json:"status"`
	MinTeamSize          int        `json:"minTeamSize"`
	MaxTeamSize          int        `json:"maxTeamSize"`
	Participants         int        `json:"participants"`
	Teams                []TeamView `json:"teams"`
}

func mapHackathon(h hackathon.Hackathon, now time.Time) HackathonView {
	teams := make([]TeamView, len(h.Teams))
	for i, t := range h.Teams {
		teams[i] = mapTeam(t, false)
	}
	return HackathonView{
		UUID:                 h.UUID.String(),
		Title:                h.Title,
		StartTime:            h.StartTime,
		EndTime:              h.EndTime,
		JudgingEndTime:       h.JudgingEndTime,
		RegistrationDeadline: h.RegistrationDeadline,
		Status:               string(h.Status(now)),
		MinTeamSize:          h.MinTeamSize,
		MaxTeamSize:          h.MaxTeamSize,
		Participants:         len(h.Participants),
		Teams:                teams,
	}
}

type ProjectSubmissionView struct {
	UUID        string    `json:"uuid"`
	HackathonID string    `json:"hackathonId"`
	TeamID      *string   `json:"teamId,omitempty"`
	UserUUID    *string   `json:"userUuid,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	RepoURL     string    `json:"repoUrl"`
	DemoURL     *string   `json:"demoUrl,omitempty"`
	TotalVotes  int       `json:"totalVotes"`
	CreatedAt   time.Time `json:"createdAt"`
}

func mapProjectSubmission(s hackathon.Submission) ProjectSubmissionView {
	view := ProjectSubmissionView{
		UUID:        s.UUID.String(),
		HackathonID: s.HackathonID.String(),
		Title:       s.Title,
		Description: s.Description,
		RepoURL:     s.RepoURL,
		DemoURL:     s.DemoURL,
		TotalVotes:  s.TotalVotes,
		CreatedAt:   s.CreatedAt,
	}
	if s.TeamID != nil {
		id := s.TeamID.String()
		view.TeamID = &id
	}
	if s.UserUUID != nil {
		id := s.UserUUID.String()
		view.UserUUID = &id
	}
	return view
}
