package subm

import (
	"net/http"

	"github.com/develevate/backend/srvcerror"
)

const ErrCodeEmptySourceCode = "empty_source_code"

func ErrEmptySourceCode() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmptySourceCode,
		"source code must not be empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeInvalidLanguage = "invalid_language"

func ErrInvalidLanguage(lang string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidLanguage,
		"unsupported programming language: "+lang,
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNoTestCases = "no_test_cases"

func ErrNoTestCases() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoTestCases,
		"problem has no test cases configured",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeSubmissionNotFound = "submission_not_found"

func ErrSubmissionNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeSubmissionNotFound,
		"submission not found",
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeOutsideContestWindow = "outside_contest_window"

func ErrOutsideContestWindow() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeOutsideContestWindow,
		"the contest is not accepting submissions at this time",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeUnauthenticated = "unauthenticated"

func ErrUnauthenticated() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnauthenticated,
		"submitting requires authentication",
	).SetHttpStatusCode(http.StatusUnauthorized)
}
