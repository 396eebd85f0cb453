// Package entitlement реализует регистрацию пользователей и чтение их уровня доступа.
package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

// Repository хранилище пользователей.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUserIfAbsent(ctx context.Context, user models.User) (string, error)
}

// RegisterResult результат регистрации.
type RegisterResult struct {
	Inserted bool   `json:"inserted"`
	UserID   string `json:"userId,omitempty"`
}

// Service сервис регистрации и ролей.
type Service struct {
	repo     Repository
	log      *slog.Logger
	timeout  time.Duration
	validate *validator.Validate
	now      func() time.Time
}

// New создает новый экземпляр Service. timeout ограничивает каждый вызов хранилища.
func New(repo Repository, log *slog.Logger, timeout time.Duration) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		timeout:  timeout,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Register создает пользователя с уровнем Free. Повторная регистрация того же email
// ничего не меняет и возвращает Inserted=false.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*RegisterResult, error) {
	const op = "services.entitlement.Register"
	log := s.log.With(slog.String("op", op))

	if err := s.validate.Var(req.Email, "required,email"); err != nil {
		return nil, apperr.New(apperr.BadRequest, "a valid email is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.repo.InsertUserIfAbsent(ctx, models.User{
		Email:     req.Email,
		Name:      req.Name,
		Image:     req.Image,
		Role:      models.TierFree,
		CreatedAt: s.now().UTC(),
	})
	if errors.Is(err, storage.ErrUserExists) {
		log.Debug("user already exists")
		return &RegisterResult{Inserted: false}, nil
	}
	if err != nil {
		log.Error("failed to insert user", sl.Err(err))
		return nil, apperr.UnavailableErr("user insert failed", err)
	}
	log.Info("user registered", slog.String("user_id", id))
	return &RegisterResult{Inserted: true, UserID: id}, nil
}

// Role возвращает сохраненный уровень доступа. Для незарегистрированного email это Free.
func (s *Service) Role(ctx context.Context, email string) (models.Tier, error) {
	const op = "services.entitlement.Role"

	if email == "" {
		return "", apperr.New(apperr.BadRequest, "email is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return models.TierFree, nil
	}
	if err != nil {
		s.log.Error("failed to get user role", slog.String("op", op), sl.Err(err))
		return "", apperr.UnavailableErr("failed to get user role", err)
	}
	if !u.Role.Valid() {
		return models.TierFree, nil
	}
	return u.Role, nil
}
