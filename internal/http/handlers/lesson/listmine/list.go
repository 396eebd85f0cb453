// Package listmine реализует HTTP-обработчик списка уроков текущего пользователя.
package listmine

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики списка уроков автора.
type Service interface {
	ListMine(ctx context.Context, email string) ([]*models.Lesson, error)
}

// Handler обрабатывает запросы на список своих уроков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Мои уроки
// @Tags Lessons
// @Produce  json
// @Success 200 {array} models.Lesson
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /my-lessons [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.listmine"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	lessons, err := h.service.ListMine(r.Context(), middlewarectx.EmailFromContext(r.Context()))
	if err != nil {
		log.Error("failed to list own lessons", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	if lessons == nil {
		lessons = []*models.Lesson{}
	}

	render.JSON(w, r, lessons)
}
