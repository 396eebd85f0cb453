// Package create реализует HTTP-обработчик публикации урока.
//
// Автор берется из JWT токена. Урок с уровнем Premium может опубликовать только
// пользователь, у которого сейчас сохранен Premium.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lesson-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики создания урока.
type Service interface {
	Create(ctx context.Context, email string, draft models.LessonDraft) (*models.Lesson, error)
}

// Handler обрабатывает запросы на создание урока.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис уроков
	validate *validator.Validate // Валидатор структуры входящих данных
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
// @Summary Создать урок
// @Tags Lessons
// @Accept  json
// @Produce  json
// @Param request body models.LessonDraft true "Урок"
// @Success 201 {object} models.Lesson
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 403 {object} response.ErrorResponse "Недостаточный уровень доступа"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /lessons [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var draft models.LessonDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	lesson, err := h.service.Create(r.Context(), middlewarectx.EmailFromContext(r.Context()), draft)
	if err != nil {
		log.Error("failed to create lesson", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("success to create lesson", slog.String("lesson_id", lesson.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, lesson)
}
