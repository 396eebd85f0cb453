package create

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lesson-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, email string, draft models.LessonDraft) (*models.Lesson, error) {
	args := m.Called(ctx, email, draft)
	if res := args.Get(0); res != nil {
		return res.(*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание",
			body: `{"title":"On patience","description":"Wait","accessLevel":"Free"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "author@example.com", mock.MatchedBy(func(d models.LessonDraft) bool {
					return d.Title == "On patience" && d.AccessLevel == models.TierFree
				})).Return(&models.Lesson{ID: "l-1", Title: "On patience"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"_id":"l-1"`,
		},
		{
			name: "premium без доступа",
			body: `{"title":"Secrets","description":"...","accessLevel":"Premium"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "author@example.com", mock.Anything).
					Return(nil, apperr.New(apperr.Forbidden, "premium lessons require a Premium account")).Once()
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"kind":"forbidden"`,
		},
		{
			name:           "неизвестный уровень",
			body:           `{"title":"x","description":"y","accessLevel":"Gold"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field AccessLevel must be one of`,
		},
		{
			name:           "без заголовка",
			body:           `{"description":"y"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Title is a required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/lessons", strings.NewReader(tt.body))
			req = req.WithContext(middlewarectx.WithEmail(req.Context(), "author@example.com"))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
