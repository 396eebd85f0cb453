package remove

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lesson-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, email, id string) error {
	args := m.Called(ctx, email, id)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		id             string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{name: "успешное удаление", id: "l-1", expectedStatus: http.StatusOK, expectedBody: `"deletedId":"l-1"`},
		{name: "некорректный id", id: "abc", err: apperr.New(apperr.BadRequest, "invalid lesson ID"), expectedStatus: http.StatusBadRequest, expectedBody: `invalid lesson ID`},
		{name: "чужой урок", id: "l-2", err: apperr.New(apperr.Forbidden, "only the author can change this lesson"), expectedStatus: http.StatusForbidden, expectedBody: `"kind":"forbidden"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Remove", mock.Anything, "author@example.com", tt.id).Return(tt.err).Once()

			req := httptest.NewRequest(http.MethodDelete, "/lessons/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithEmail(ctx, "author@example.com"))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
