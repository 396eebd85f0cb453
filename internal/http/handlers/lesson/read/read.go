// Package read реализует HTTP-обработчик получения урока по ID.
//
// Каждый успешный запрос увеличивает счетчик просмотров урока.
package read

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

// Service описывает интерфейс бизнес-логики чтения урока.
type Service interface {
	Get(ctx context.Context, id string) (*models.Lesson, error)
}

// Handler обрабатывает запросы на получение урока по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения урока по ID
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить урок
// @Tags Lessons
// @Produce  json
// @Param id path string true "ID урока"
// @Success 200 {object} models.Lesson
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Урок не найден"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /lesson/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	lesson, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to read lesson", slog.String("lesson_id", id), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	render.JSON(w, r, lesson)
}
