package checkoutcreate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateSession(ctx context.Context, email string, cost any) (string, error) {
	args := m.Called(ctx, email, cost)
	return args.String(0), args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "numeric cost",
			body: `{"email":"user@example.com","cost":1500}`,
			setupMock: func(m *MockService) {
				m.On("CreateSession", mock.Anything, "user@example.com", json.Number("1500")).
					Return("https://pay.example/cs_1", nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"url":"https://pay.example/cs_1"}`,
		},
		{
			name: "string cost",
			body: `{"email":"user@example.com","cost":"2000"}`,
			setupMock: func(m *MockService) {
				m.On("CreateSession", mock.Anything, "user@example.com", "2000").
					Return("https://pay.example/cs_2", nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"url":"https://pay.example/cs_2"`,
		},
		{
			name:           "invalid email",
			body:           `{"email":"not-an-email"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"kind":"bad_request"`,
		},
		{
			name:           "broken json",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "provider down",
			body: `{"email":"user@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("CreateSession", mock.Anything, "user@example.com", nil).
					Return("", apperr.UnavailableErr("payment provider unavailable", errors.New("dial tcp"))).Once()
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"kind":"service_unavailable"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/checkout-session", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotContains(t, w.Body.String(), "dial tcp")
			svc.AssertExpectations(t)
		})
	}
}
