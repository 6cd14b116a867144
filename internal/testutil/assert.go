package testutil

import (
	stderrors "errors"
	"testing"

	apperrors "github.com/sqsrelay/sqsrelay/internal/errors"

	"github.com/stretchr/testify/assert"
)

// AssertAppErrorCode checks if the error has a specific error code.
func AssertAppErrorCode(t *testing.T, err error, expectedCode string) bool {
	t.Helper()
	code := apperrors.GetErrorCode(err)
	if code != expectedCode {
		return assert.Fail(t, "Error code mismatch", "Expected error code %q, got %q (%v)", expectedCode, code, err)
	}
	return true
}

// AssertWraps checks that err wraps target somewhere in its chain.
func AssertWraps(t *testing.T, err, target error) bool {
	t.Helper()
	if !stderrors.Is(err, target) {
		return assert.Fail(t, "Error chain mismatch", "Expected %v to wrap %v", err, target)
	}
	return true
}
