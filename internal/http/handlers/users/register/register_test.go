package register

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/services/entitlement"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req models.RegisterRequest) (*entitlement.RegisterResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*entitlement.RegisterResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "новый пользователь",
			body: `{"email":"new@example.com","name":"Nadia"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, models.RegisterRequest{Email: "new@example.com", Name: "Nadia"}).
					Return(&entitlement.RegisterResult{Inserted: true, UserID: "42"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"inserted":true,"userId":"42"}`,
		},
		{
			name: "повторная регистрация",
			body: `{"email":"new@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, models.RegisterRequest{Email: "new@example.com"}).
					Return(&entitlement.RegisterResult{Inserted: false}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"inserted":false}`,
		},
		{
			name:           "без email",
			body:           `{"name":"Nadia"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email is a required field`,
		},
		{
			name: "хранилище недоступно",
			body: `{"email":"new@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(nil, apperr.UnavailableErr("user insert failed", errors.New("pool closed"))).Once()
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"error":"user insert failed"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
