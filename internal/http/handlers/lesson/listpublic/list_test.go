package listpublic

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListPublic(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListPublicHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		url            string
		limit, offset  int
		callService    bool
		expectedStatus int
		expectedBody   string
	}{
		{name: "без параметров", url: "/public-lessons", callService: true, expectedStatus: http.StatusOK, expectedBody: `"title":"A"`},
		{name: "страница", url: "/public-lessons?limit=10&offset=20", limit: 10, offset: 20, callService: true, expectedStatus: http.StatusOK, expectedBody: `"title":"A"`},
		{name: "limit слишком большой", url: "/public-lessons?limit=1000", expectedStatus: http.StatusBadRequest, expectedBody: `invalid limit`},
		{name: "отрицательное смещение", url: "/public-lessons?offset=-1", expectedStatus: http.StatusBadRequest, expectedBody: `invalid offset`},
		{name: "не число", url: "/public-lessons?limit=ten", expectedStatus: http.StatusBadRequest, expectedBody: `invalid limit`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.callService {
				svc.On("ListPublic", mock.Anything, tt.limit, tt.offset).
					Return([]*models.Lesson{{ID: "1", Title: "A", Visibility: models.VisibilityPublic}}, nil).Once()
			}

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
