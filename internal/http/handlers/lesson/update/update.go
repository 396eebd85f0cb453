// Package update реализует HTTP-обработчик изменения урока его автором.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lesson-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики изменения урока.
type Service interface {
	Update(ctx context.Context, email, id string, patch models.LessonPatch) (*models.Lesson, error)
}

// Handler обрабатывает запросы на изменение урока.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить урок
// @Description Поля автора и роль в теле игнорируются. Уровень Premium требует Premium у автора
// @Tags Lessons
// @Accept  json
// @Produce  json
// @Param id path string true "ID урока"
// @Param request body models.LessonPatch true "Изменяемые поля"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или данные"
// @Failure 403 {object} response.ErrorResponse "Не автор или недостаточный уровень"
// @Failure 404 {object} response.ErrorResponse "Урок не найден"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /lessons/{id} [patch]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var patch models.LessonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id := chi.URLParam(r, "id")
	lesson, err := h.service.Update(r.Context(), middlewarectx.EmailFromContext(r.Context()), id, patch)
	if err != nil {
		log.Error("failed to update lesson", slog.String("lesson_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("success to update lesson", slog.String("lesson_id", id))
	render.JSON(w, r, lesson)
}
