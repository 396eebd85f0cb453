package lesson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/services/access"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateLesson(ctx context.Context, lesson models.Lesson) (string, error) {
	args := m.Called(ctx, lesson)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockRepository) UpdateLesson(ctx context.Context, lesson models.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockRepository) DeleteLesson(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) IncrementLessonViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ListLessons(ctx context.Context, filter models.LessonFilter) ([]*models.Lesson, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lesson), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetLesson(ctx context.Context, id string) (*models.Lesson, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Lesson), args.Bool(1), args.Error(2)
}

func (m *MockCache) SetLesson(ctx context.Context, l *models.Lesson) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockCache) InvalidateLesson(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// users хранилище пользователей для access.Controller.
type users map[string]models.Tier

func (u users) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	tier, ok := u[email]
	if !ok {
		return nil, fmt.Errorf("storage.GetUserByEmail: %w", storage.ErrNotFound)
	}
	return &models.User{Email: email, Role: tier}, nil
}

const (
	freeEmail    = "free@example.com"
	premiumEmail = "vip@example.com"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(repo Repository, cache Cache) *Service {
	log := newNoopLogger()
	gate := access.New(users{freeEmail: models.TierFree, premiumEmail: models.TierPremium}, log, time.Second)
	s := New(repo, cache, gate, log, time.Second)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func strPtr(s string) *string { return &s }

func TestService_Get(t *testing.T) {
	id := uuid.NewString()
	stored := &models.Lesson{ID: id, Title: "Patience", OwnerEmail: freeEmail, ViewsCount: 4}

	t.Run("store hit populates cache and counts view", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		cache.On("GetLesson", mock.Anything, id).Return(nil, false, nil).Once()
		repo.On("GetLesson", mock.Anything, id).Return(stored, nil).Once()
		cache.On("SetLesson", mock.Anything, mock.MatchedBy(func(l *models.Lesson) bool { return l.ViewsCount == 4 })).Return(nil).Once()
		repo.On("IncrementLessonViews", mock.Anything, id).Return(nil).Once()
		cache.On("SetLesson", mock.Anything, mock.MatchedBy(func(l *models.Lesson) bool { return l.ViewsCount == 5 })).Return(nil).Once()

		got, err := newService(repo, cache).Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.ViewsCount)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips store read", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		cache.On("GetLesson", mock.Anything, id).Return(stored, true, nil).Once()
		repo.On("IncrementLessonViews", mock.Anything, id).Return(nil).Once()
		cache.On("SetLesson", mock.Anything, mock.AnythingOfType("*models.Lesson")).Return(nil).Once()

		got, err := newService(repo, cache).Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		repo.AssertNotCalled(t, "GetLesson", mock.Anything, mock.Anything)
	})

	t.Run("cached copy follows view count", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		cached := &models.Lesson{ID: id, Title: "Patience", ViewsCount: 9}
		cache.On("GetLesson", mock.Anything, id).Return(cached, true, nil).Once()
		repo.On("IncrementLessonViews", mock.Anything, id).Return(nil).Once()
		cache.On("SetLesson", mock.Anything, mock.MatchedBy(func(l *models.Lesson) bool {
			return l.ID == id && l.ViewsCount == 10
		})).Return(nil).Once()

		got, err := newService(repo, cache).Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ViewsCount)
		assert.Equal(t, int64(9), cached.ViewsCount, "cached value is copied before the bump")
		cache.AssertExpectations(t)
	})

	t.Run("failed increment leaves cache alone", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		cache.On("GetLesson", mock.Anything, id).Return(&models.Lesson{ID: id, ViewsCount: 3}, true, nil).Once()
		repo.On("IncrementLessonViews", mock.Anything, id).Return(errors.New("timeout")).Once()

		_, err := newService(repo, cache).Get(context.Background(), id)
		require.NoError(t, err)
		cache.AssertNotCalled(t, "SetLesson", mock.Anything, mock.Anything)
	})

	t.Run("view increment failure is not fatal", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(stored, nil).Once()
		repo.On("IncrementLessonViews", mock.Anything, id).Return(errors.New("timeout")).Once()

		_, err := newService(repo, nil).Get(context.Background(), id)
		require.NoError(t, err)
	})

	for _, bad := range []string{"not-a-uuid", "65f1c2a9e4b0a1b2c3d4e5f6"} {
		t.Run("invalid id "+bad, func(t *testing.T) {
			repo := new(MockRepository)
			_, err := newService(repo, nil).Get(context.Background(), bad)
			require.Error(t, err)
			assert.Equal(t, apperr.BadRequest, apperr.KindOf(err))
			assert.Equal(t, "invalid lesson ID", apperr.MessageOf(err))
			repo.AssertNotCalled(t, "GetLesson", mock.Anything, mock.Anything)
		})
	}

	t.Run("not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(nil, fmt.Errorf("op: %w", storage.ErrNotFound)).Once()

		_, err := newService(repo, nil).Get(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
		repo.AssertNotCalled(t, "IncrementLessonViews", mock.Anything, mock.Anything)
	})

	t.Run("storage outage", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(nil, errors.New("connection reset")).Once()

		_, err := newService(repo, nil).Get(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))
	})
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		draft    models.LessonDraft
		wantKind apperr.Kind
	}{
		{name: "free lesson by free user", email: freeEmail, draft: models.LessonDraft{Title: "t", Description: "d"}},
		{name: "premium lesson by premium user", email: premiumEmail, draft: models.LessonDraft{Title: "t", Description: "d", AccessLevel: models.TierPremium}},
		{name: "premium lesson by free user", email: freeEmail, draft: models.LessonDraft{Title: "t", Description: "d", AccessLevel: models.TierPremium}, wantKind: apperr.Forbidden},
		{name: "unregistered author", email: "ghost@example.com", draft: models.LessonDraft{Title: "t", Description: "d"}, wantKind: apperr.Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.wantKind == "" {
				repo.On("CreateLesson", mock.Anything, mock.AnythingOfType("models.Lesson")).Return("id", nil).Once()
			}

			got, err := newService(repo, nil).Create(context.Background(), tt.email, tt.draft)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				repo.AssertNotCalled(t, "CreateLesson", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, got.OwnerEmail)
			assert.Equal(t, models.VisibilityPublic, got.Visibility)
			assert.True(t, got.AccessLevel.Valid())
			_, parseErr := uuid.Parse(got.ID)
			assert.NoError(t, parseErr)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.NewString()
	current := func() *models.Lesson {
		return &models.Lesson{ID: id, Title: "old", OwnerEmail: freeEmail, AccessLevel: models.TierFree, Visibility: models.VisibilityPublic}
	}

	t.Run("owner edits title and owner fields are dropped", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("GetLesson", mock.Anything, id).Return(current(), nil).Once()
		repo.On("UpdateLesson", mock.Anything, mock.MatchedBy(func(l models.Lesson) bool {
			return l.Title == "new" && l.OwnerEmail == freeEmail && l.OwnerName == ""
		})).Return(nil).Once()
		cache.On("InvalidateLesson", mock.Anything, id).Return(nil).Once()

		patch := models.LessonPatch{
			Title:      strPtr("new"),
			OwnerEmail: strPtr("attacker@example.com"),
			OwnerName:  strPtr("Mallory"),
			Role:       strPtr("Premium"),
		}
		got, err := newService(repo, cache).Update(context.Background(), freeEmail, id, patch)
		require.NoError(t, err)
		assert.Equal(t, freeEmail, got.OwnerEmail)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("free owner cannot raise level to premium", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(current(), nil).Once()
		premium := models.TierPremium

		_, err := newService(repo, nil).Update(context.Background(), freeEmail, id, models.LessonPatch{AccessLevel: &premium})
		require.Error(t, err)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
		repo.AssertNotCalled(t, "UpdateLesson", mock.Anything, mock.Anything)
	})

	t.Run("role claim in payload does not lift a free owner", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(current(), nil).Once()
		premium := models.TierPremium

		_, err := newService(repo, nil).Update(context.Background(), freeEmail, id, models.LessonPatch{
			AccessLevel: &premium,
			Role:        strPtr("Premium"),
		})
		require.Error(t, err)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
		repo.AssertNotCalled(t, "UpdateLesson", mock.Anything, mock.Anything)
	})

	t.Run("non owner is forbidden", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(current(), nil).Once()

		_, err := newService(repo, nil).Update(context.Background(), premiumEmail, id, models.LessonPatch{Title: strPtr("x")})
		require.Error(t, err)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	})

	t.Run("missing lesson", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(nil, storage.ErrNotFound).Once()

		_, err := newService(repo, nil).Update(context.Background(), freeEmail, id, models.LessonPatch{})
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestService_Remove(t *testing.T) {
	id := uuid.NewString()
	owned := &models.Lesson{ID: id, OwnerEmail: freeEmail}

	t.Run("owner deletes", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		repo.On("GetLesson", mock.Anything, id).Return(owned, nil).Once()
		repo.On("DeleteLesson", mock.Anything, id).Return(int64(1), nil).Once()
		cache.On("InvalidateLesson", mock.Anything, id).Return(errors.New("redis down")).Once()

		require.NoError(t, newService(repo, cache).Remove(context.Background(), freeEmail, id))
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("someone else", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(owned, nil).Once()

		err := newService(repo, nil).Remove(context.Background(), premiumEmail, id)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
		repo.AssertNotCalled(t, "DeleteLesson", mock.Anything, mock.Anything)
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetLesson", mock.Anything, id).Return(owned, nil).Once()
		repo.On("DeleteLesson", mock.Anything, id).Return(int64(0), nil).Once()

		err := newService(repo, nil).Remove(context.Background(), freeEmail, id)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestService_Lists(t *testing.T) {
	lessons := []*models.Lesson{{ID: "a"}, {ID: "b"}}

	t.Run("public feed", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListLessons", mock.Anything, models.LessonFilter{Visibility: models.VisibilityPublic, Limit: 20, Offset: 40}).
			Return(lessons, nil).Once()

		got, err := newService(repo, nil).ListPublic(context.Background(), 20, 40)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("mine", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListLessons", mock.Anything, models.LessonFilter{OwnerEmail: freeEmail}).Return(lessons, nil).Once()

		got, err := newService(repo, nil).ListMine(context.Background(), freeEmail)
		require.NoError(t, err)
		assert.Equal(t, lessons, got)
	})

	t.Run("mine without identity", func(t *testing.T) {
		_, err := newService(new(MockRepository), nil).ListMine(context.Background(), "")
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	})

	t.Run("outage", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListLessons", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := newService(repo, nil).ListPublic(context.Background(), 0, 0)
		assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))
	})
}
