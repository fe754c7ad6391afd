package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{validator.ValidationErrors{{Field: "pin", Message: "pin is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{user.ErrOutOfScope, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("submit: %w", timesheet.ErrTimesheetAlreadyApproved), http.StatusConflict, "CONFLICT"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, c.err)

		assert.Equal(t, c.status, rec.Code, c.err.Error())
		resp := decodeBody(t, rec)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, c.code, resp.Error.Code)
	}
}

func TestValidationErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "week_start", Message: "week_start must be in YYYY-MM-DD format"}})

	resp := decodeBody(t, rec)
	assert.Equal(t, "week_start must be in YYYY-MM-DD format", resp.Error.Details["week_start"])
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Clock in successful", map[string]bool{"recorded": true})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decodeBody(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Clock in successful", resp.Message)
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "attendance_2024-01-15_2024-01-15.csv", "text/csv; charset=utf-8", []byte("x"))

	assert.Equal(t, `attachment; filename="attendance_2024-01-15_2024-01-15.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "x", rec.Body.String())
}
