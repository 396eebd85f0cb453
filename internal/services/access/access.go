// Package access решает, может ли пользователь создать или изменить урок с заданным уровнем доступа.
// Уровень пользователя всегда перечитывается из хранилища, значения из тела запроса не учитываются.
package access

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

// Repository хранилище пользователей.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Controller проверка прав на публикацию.
type Controller struct {
	repo    Repository
	log     *slog.Logger
	timeout time.Duration
}

// New создает новый экземпляр Controller.
func New(repo Repository, log *slog.Logger, timeout time.Duration) *Controller {
	return &Controller{repo: repo, log: log, timeout: timeout}
}

// Authorize разрешает уровень Free любому зарегистрированному пользователю,
// а уровень Premium только тому, у кого сейчас сохранен Premium.
func (c *Controller) Authorize(ctx context.Context, email string, level models.Tier) error {
	const op = "services.access.Authorize"

	if level == "" {
		level = models.TierFree
	}
	if !level.Valid() {
		return apperr.New(apperr.BadRequest, "unknown access level")
	}
	if email == "" {
		return apperr.New(apperr.Forbidden, "identity is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, err := c.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.New(apperr.Forbidden, "user is not registered")
	}
	if err != nil {
		c.log.Error("failed to read user tier", slog.String("op", op), sl.Err(err))
		return apperr.UnavailableErr("failed to check access", err)
	}

	if level == models.TierPremium && u.Role != models.TierPremium {
		return apperr.New(apperr.Forbidden, "premium lessons require a Premium account")
	}
	return nil
}

// SanitizePatch убирает из патча поля об авторе и любую роль.
func (c *Controller) SanitizePatch(p models.LessonPatch) models.LessonPatch {
	p.OwnerEmail = nil
	p.OwnerName = nil
	p.Role = nil
	return p
}
