// Package listpublic реализует HTTP-обработчик публичной ленты уроков.
package listpublic

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

const maxLimit = 100

// Service описывает интерфейс бизнес-логики ленты.
type Service interface {
	ListPublic(ctx context.Context, limit, offset int) ([]*models.Lesson, error)
}

// Handler обрабатывает запросы публичной ленты.
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
// @Summary Публичные уроки
// @Tags Lessons
// @Produce  json
// @Param limit query int false "Размер страницы, не больше 100"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.Lesson
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /public-lessons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.listpublic"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := intParam(r, "limit")
	if err != nil || limit > maxLimit {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid limit"))
		return
	}
	offset, err := intParam(r, "offset")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid offset"))
		return
	}

	lessons, err := h.service.ListPublic(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list public lessons", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	if lessons == nil {
		lessons = []*models.Lesson{}
	}

	log.Info("list public lessons", slog.Int("count", len(lessons)))
	render.JSON(w, r, lessons)
}

// intParam читает неотрицательный параметр запроса, пустое значение равно 0.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
