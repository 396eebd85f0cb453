package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
)

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{"bad request", apperr.New(apperr.BadRequest, "session_id missing"), http.StatusBadRequest, "bad_request", "session_id missing"},
		{"not found", apperr.New(apperr.NotFound, "lesson not found"), http.StatusNotFound, "not_found", "lesson not found"},
		{"forbidden", apperr.New(apperr.Forbidden, "nope"), http.StatusForbidden, "forbidden", "nope"},
		{"unavailable hides cause", apperr.UnavailableErr("failed to fetch lesson", errors.New("pq: password authentication failed")), http.StatusServiceUnavailable, "service_unavailable", "failed to fetch lesson"},
		{"conflict", apperr.New(apperr.Conflict, "dup"), http.StatusConflict, "conflict", "dup"},
		{"raw error", fmt.Errorf("storage.Insert: %w", errors.New("secret detail")), http.StatusInternalServerError, "internal", "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			Fail(rr, req, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.wantKind, body.Kind)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.NotContains(t, rr.Body.String(), "secret detail")
			assert.NotContains(t, rr.Body.String(), "password")
		})
	}
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Level string `validate:"omitempty,oneof=Free Premium"`
	}
	err := validator.New().Struct(payload{Email: "nope", Level: "Gold"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "bad_request", resp.Kind)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Level must be one of: Free Premium")
}
