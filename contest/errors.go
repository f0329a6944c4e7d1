package contest

import (
	"net/http"

	"github.com/develevate/backend/srvcerror"
)

const ErrCodeContestNotFound = "contest_not_found"

func ErrContestNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotFound,
		"contest not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeProblemNotFound = "problem_not_found"

func ErrProblemNotFound(id string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeProblemNotFound,
		"contest has no problem "+id,
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeInvalidTimeWindow = "invalid_time_window"

func ErrInvalidTimeWindow() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidTimeWindow,
		"contest start time must be before its end time",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeEmptyTitle = "empty_title"

func ErrEmptyTitle() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmptyTitle,
		"contest title must not be empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeAlreadyRegistered = "already_registered"

func ErrAlreadyRegistered() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyRegistered,
		"user is already registered for this contest",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeAlreadyFinalized = "already_finalized"

func ErrAlreadyFinalized() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAlreadyFinalized,
		"contest results are already finalized; reopen before recomputing",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeNotFinalized = "not_finalized"

func ErrNotFinalized() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotFinalized,
		"contest results are not finalized",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeContestNotFinished = "contest_not_finished"

func ErrContestNotFinished() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeContestNotFinished,
		"contest has not finished yet",
	).SetHttpStatusCode(http.StatusConflict)
}
