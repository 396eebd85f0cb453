// Package role реализует HTTP-обработчик чтения уровня доступа пользователя.
package role

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

// Service определяет интерфейс чтения уровня доступа.
type Service interface {
	Role(ctx context.Context, email string) (models.Tier, error)
}

// Response тело ответа.
type Response struct {
	Role models.Tier `json:"role" example:"Free"`
}

// Handler обрабатывает запросы на чтение уровня доступа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Уровень доступа пользователя
// @Description Возвращает сохраненный уровень. Для незарегистрированного email возвращается Free
// @Tags Users
// @Produce  json
// @Param email path string true "Email пользователя"
// @Success 200 {object} Response
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /users/role/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.role"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")
	tier, err := h.service.Role(r.Context(), email)
	if err != nil {
		log.Error("failed to get role", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	render.JSON(w, r, Response{Role: tier})
}
