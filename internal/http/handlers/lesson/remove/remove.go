// Package remove реализует HTTP-обработчик удаления урока его автором.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления урока.
type Service interface {
	Remove(ctx context.Context, email, id string) error
}

// Handler обрабатывает запросы на удаление урока.
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
// @Summary Удалить урок
// @Tags Lessons
// @Produce  json
// @Param id path string true "ID урока"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Не автор"
// @Failure 404 {object} response.ErrorResponse "Урок не найден"
// @Router /lessons/{id} [delete]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.Remove(r.Context(), middlewarectx.EmailFromContext(r.Context()), id); err != nil {
		log.Error("failed to remove lesson", slog.String("lesson_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("success to remove lesson", slog.String("lesson_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deletedId": id,
	}))
}
