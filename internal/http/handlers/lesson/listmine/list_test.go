package listmine

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lesson-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListMine(ctx context.Context, email string) ([]*models.Lesson, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.([]*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListMineHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("уроки автора", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListMine", mock.Anything, "author@example.com").
			Return([]*models.Lesson{{ID: "1", OwnerEmail: "author@example.com", Visibility: models.VisibilityPrivate}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/my-lessons", nil)
		req = req.WithContext(middlewarectx.WithEmail(req.Context(), "author@example.com"))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"visibility":"Private"`)
		svc.AssertExpectations(t)
	})

	t.Run("пустой список", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListMine", mock.Anything, "author@example.com").Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/my-lessons", nil)
		req = req.WithContext(middlewarectx.WithEmail(req.Context(), "author@example.com"))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})
}
