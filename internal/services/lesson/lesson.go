// Package lesson реализует операции с уроками: публичную ленту, чтение со счетчиком
// просмотров, список своих уроков и изменения, которые проходят через проверку доступа.
package lesson

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

// Repository хранилище уроков.
type Repository interface {
	CreateLesson(ctx context.Context, lesson models.Lesson) (string, error)
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson models.Lesson) error
	DeleteLesson(ctx context.Context, id string) (int64, error)
	IncrementLessonViews(ctx context.Context, id string) error
	ListLessons(ctx context.Context, filter models.LessonFilter) ([]*models.Lesson, error)
}

// Cache кэш чтения уроков.
type Cache interface {
	GetLesson(ctx context.Context, id string) (*models.Lesson, bool, error)
	SetLesson(ctx context.Context, l *models.Lesson) error
	InvalidateLesson(ctx context.Context, id string) error
}

// Gate проверка прав на публикацию.
type Gate interface {
	Authorize(ctx context.Context, email string, level models.Tier) error
	SanitizePatch(p models.LessonPatch) models.LessonPatch
}

// Service сервис уроков.
type Service struct {
	repo    Repository
	cache   Cache // Может быть nil
	gate    Gate
	log     *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, gate Gate, log *slog.Logger, timeout time.Duration) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		gate:    gate,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// ListPublic возвращает публичные уроки, новые первыми.
func (s *Service) ListPublic(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	return s.list(ctx, "services.lesson.ListPublic", models.LessonFilter{
		Visibility: models.VisibilityPublic,
		Limit:      limit,
		Offset:     offset,
	})
}

// ListMine возвращает все уроки автора.
func (s *Service) ListMine(ctx context.Context, email string) ([]*models.Lesson, error) {
	if email == "" {
		return nil, apperr.New(apperr.Forbidden, "identity is required")
	}
	return s.list(ctx, "services.lesson.ListMine", models.LessonFilter{OwnerEmail: email})
}

func (s *Service) list(ctx context.Context, op string, filter models.LessonFilter) ([]*models.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lessons, err := s.repo.ListLessons(ctx, filter)
	if err != nil {
		s.log.Error("failed to list lessons", slog.String("op", op), sl.Err(err))
		return nil, apperr.UnavailableErr("failed to fetch lessons", err)
	}
	return lessons, nil
}

// Get возвращает урок и увеличивает счетчик просмотров. Ответ отражает урок до этого просмотра.
func (s *Service) Get(ctx context.Context, id string) (*models.Lesson, error) {
	const op = "services.lesson.Get"
	log := s.log.With(slog.String("op", op), slog.String("lesson_id", id))

	if err := validateID(id); err != nil {
		return nil, err
	}

	l, err := s.load(ctx, log, id)
	if err != nil {
		return nil, err
	}

	viewCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.repo.IncrementLessonViews(viewCtx, id); err != nil {
		log.Warn("failed to increment views", sl.Err(err))
		return l, nil
	}
	s.refreshViews(viewCtx, log, l)
	return l, nil
}

// Create публикует урок от имени email. Уровень доступа урока проверяется по текущему уровню автора.
func (s *Service) Create(ctx context.Context, email string, draft models.LessonDraft) (*models.Lesson, error) {
	const op = "services.lesson.Create"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	level := draft.AccessLevel
	if level == "" {
		level = models.TierFree
	}
	if err := s.gate.Authorize(ctx, email, level); err != nil {
		log.Info("lesson create denied", sl.Err(err))
		return nil, err
	}

	visibility := models.Visibility(draft.Visibility)
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	now := s.now().UTC()
	l := models.Lesson{
		ID:            uuid.NewString(),
		Title:         draft.Title,
		Description:   draft.Description,
		Category:      draft.Category,
		EmotionalTone: draft.EmotionalTone,
		Tags:          draft.Tags,
		Image:         draft.Image,
		AccessLevel:   level,
		Visibility:    visibility,
		OwnerEmail:    email,
		OwnerName:     draft.OwnerName,
		OwnerImage:    draft.OwnerImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.repo.CreateLesson(ctx, l); err != nil {
		log.Error("failed to create lesson", sl.Err(err))
		return nil, apperr.UnavailableErr("failed to create lesson", err)
	}
	log.Info("lesson created", slog.String("lesson_id", l.ID))
	return &l, nil
}

// Update применяет патч к уроку автора. Поля об авторе и роль из патча отбрасываются,
// а права проверяются по уровню доступа, который получится после изменения.
func (s *Service) Update(ctx context.Context, email, id string, patch models.LessonPatch) (*models.Lesson, error) {
	const op = "services.lesson.Update"
	log := s.log.With(slog.String("op", op), slog.String("lesson_id", id), slog.String("email", email))

	if err := validateID(id); err != nil {
		return nil, err
	}
	patch = s.gate.SanitizePatch(patch)

	current, err := s.fetchOwned(ctx, log, email, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	patch.Apply(&merged)
	if !merged.AccessLevel.Valid() {
		return nil, apperr.New(apperr.BadRequest, "unknown access level")
	}
	if err := s.gate.Authorize(ctx, email, merged.AccessLevel); err != nil {
		log.Info("lesson update denied", sl.Err(err))
		return nil, err
	}
	merged.UpdatedAt = s.now().UTC()

	updCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.repo.UpdateLesson(updCtx, merged); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "lesson not found")
		}
		log.Error("failed to update lesson", sl.Err(err))
		return nil, apperr.UnavailableErr("failed to update lesson", err)
	}
	s.invalidate(ctx, log, id)
	return &merged, nil
}

// Remove удаляет урок автора.
func (s *Service) Remove(ctx context.Context, email, id string) error {
	const op = "services.lesson.Remove"
	log := s.log.With(slog.String("op", op), slog.String("lesson_id", id), slog.String("email", email))

	if err := validateID(id); err != nil {
		return err
	}
	if _, err := s.fetchOwned(ctx, log, email, id); err != nil {
		return err
	}

	delCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := s.repo.DeleteLesson(delCtx, id)
	if err != nil {
		log.Error("failed to delete lesson", sl.Err(err))
		return apperr.UnavailableErr("failed to delete lesson", err)
	}
	s.invalidate(ctx, log, id)
	if n == 0 {
		return apperr.New(apperr.NotFound, "lesson not found")
	}
	log.Info("lesson deleted")
	return nil
}

// load читает урок из кэша или хранилища. Ошибки кэша не прерывают чтение.
func (s *Service) load(ctx context.Context, log *slog.Logger, id string) (*models.Lesson, error) {
	if s.cache != nil {
		l, found, err := s.cache.GetLesson(ctx, id)
		if err != nil {
			log.Warn("lesson cache read failed", sl.Err(err))
		}
		if found {
			return l, nil
		}
	}
	l, err := s.fromStore(ctx, log, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetLesson(ctx, l); err != nil {
			log.Warn("lesson cache write failed", sl.Err(err))
		}
	}
	return l, nil
}

// refreshViews кладет в кэш копию урока с учетом только что засчитанного просмотра.
// При параллельных чтениях счетчик в кэше может отставать от хранилища до истечения TTL.
func (s *Service) refreshViews(ctx context.Context, log *slog.Logger, l *models.Lesson) {
	if s.cache == nil {
		return
	}
	viewed := *l
	viewed.ViewsCount++
	if err := s.cache.SetLesson(ctx, &viewed); err != nil {
		log.Warn("lesson cache refresh failed", sl.Err(err))
	}
}

func (s *Service) fromStore(ctx context.Context, log *slog.Logger, id string) (*models.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	l, err := s.repo.GetLesson(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.New(apperr.NotFound, "lesson not found")
	}
	if err != nil {
		log.Error("failed to get lesson", sl.Err(err))
		return nil, apperr.UnavailableErr("failed to fetch lesson", err)
	}
	return l, nil
}

// fetchOwned читает урок в обход кэша и проверяет, что email его автор.
func (s *Service) fetchOwned(ctx context.Context, log *slog.Logger, email, id string) (*models.Lesson, error) {
	l, err := s.fromStore(ctx, log, id)
	if err != nil {
		return nil, err
	}
	if email == "" || l.OwnerEmail != email {
		return nil, apperr.New(apperr.Forbidden, "only the author can change this lesson")
	}
	return l, nil
}

func (s *Service) invalidate(ctx context.Context, log *slog.Logger, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLesson(context.WithoutCancel(ctx), id); err != nil {
		log.Warn("lesson cache invalidation failed", sl.Err(err))
	}
}

// validateID принимает только UUID: уроки в обоих хранилищах ключуются UUID-строкой.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.New(apperr.BadRequest, "invalid lesson ID")
	}
	return nil
}
