package contest_test

import (
	"errors"
	"testing"

	"github.com/develevate/backend/srvcerror"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	var srvcErr *srvcerror.Error
	if !errors.As(err, &srvcErr) {
		t.Fatalf("expected a service error, got %v", err)
	}
	return srvcErr.ErrorCode()
}
