package hackathon

import (
	"fmt"
	"net/http"

	"github.com/develevate/backend/srvcerror"
)

const ErrCodeHackathonNotFound = "hackathon_not_found"

func ErrHackathonNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeHackathonNotFound,
		"hackathon not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeSubmissionNotFound = "hackathon_submission_not_found"

func ErrSubmissionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionNotFound,
		"hackathon submission not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeTeamNotFound = "team_not_found"

func ErrTeamNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTeamNotFound,
		"team not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeInvalidTimeWindow = "invalid_time_window"

func ErrInvalidTimeWindow() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidTimeWindow,
		"hackathon windows must be ordered: start, end, judging end",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidRepoURL = "invalid_repo_url"

func ErrInvalidRepoURL() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidRepoURL,
		"repository url must be a GitHub repository url",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeEmptyTitle = "empty_title"

func ErrEmptyTitle() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmptyTitle,
		"hackathon title must not be empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeAlreadyVoted = "already_voted"

func ErrAlreadyVoted() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyVoted,
		"you have already voted for this submission",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeSelfVote = "self_vote"

func ErrSelfVote() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSelfVote,
		"you cannot vote for your own submission",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeNotVoted = "not_voted"

func ErrNotVoted() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotVoted,
		"you have not voted for this submission",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeRegistrationClosed = "registration_closed"

func ErrRegistrationClosed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRegistrationClosed,
		"hackathon registration has closed",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeInvalidInviteCode = "invalid_invite_code"

func ErrInvalidInviteCode() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidInviteCode,
		"invite code does not match any team",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeTeamFull = "team_full"

func ErrTeamFull() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTeamFull,
		"team already has the maximum number of members",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeTeamSizeOutOfBounds = "team_size_out_of_bounds"

func ErrTeamSizeOutOfBounds(team string, size, min, max int) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeTeamSizeOutOfBounds,
		fmt.Sprintf("team %q has %d members, allowed range is %d..%d", team, size, min, max),
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeAlreadyMember = "already_team_member"

func ErrAlreadyMember() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyMember,
		"user is already a member of a team in this hackathon",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeSubmissionWindowClosed = "submission_window_closed"

func ErrSubmissionWindowClosed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionWindowClosed,
		"the hackathon is not accepting project submissions at this time",
	).SetHttpStatusCode(http.StatusConflict)
}
