package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		status int
	}{
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeMissingProjectID, http.StatusBadRequest},
		{CodeInvalidFilename, http.StatusBadRequest},
		{CodeEmptyContent, http.StatusBadRequest},
		{CodeInvalidChapterNum, http.StatusBadRequest},
		{CodeFileNotFound, http.StatusNotFound},
		{CodeChapterNotFound, http.StatusNotFound},
		{CodeBackendNotConfigured, http.StatusInternalServerError},
		{CodeStorageError, http.StatusInternalServerError},
		{CodeInternalError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, New(tc.code, "x").HTTPStatus, string(tc.code))
	}
}

func TestNewUpstreamPreservesStatus(t *testing.T) {
	for _, status := range []int{400, 404, 409, 500, 502} {
		appErr := NewUpstream(status, "detail text")
		assert.Equal(t, status, appErr.HTTPStatus)
		assert.Equal(t, CodeUpstreamError, appErr.Code)
		assert.Equal(t, "detail text", appErr.Detail)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	appErr := Wrap(cause, CodeStorageError, "write failed")

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "write failed")
	assert.Contains(t, appErr.Error(), "disk full")
}

func TestAsAppError(t *testing.T) {
	t.Run("passthrough", func(t *testing.T) {
		require.Same(t, ErrFileNotFound, AsAppError(ErrFileNotFound))
	})

	t.Run("wraps foreign errors", func(t *testing.T) {
		appErr := AsAppError(fmt.Errorf("boom"))
		assert.Equal(t, CodeUnknown, appErr.Code)
		assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	})
}

func TestBackendNotConfiguredMessage(t *testing.T) {
	assert.Equal(t, "Backend URL not configured", ErrBackendNotConfigured.Message)
	assert.Equal(t, http.StatusInternalServerError, ErrBackendNotConfigured.HTTPStatus)
}
