// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Регистрация идемпотентна: повторный запрос с тем же email возвращает inserted=false
// и не меняет сохраненный уровень доступа.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/services/entitlement"
)

// Service определяет интерфейс регистрации.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*entitlement.RegisterResult, error)
}

// Handler обрабатывает запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать пользователя
// @Description Создает пользователя с уровнем Free, если email еще не зарегистрирован
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.RegisterRequest true "Данные пользователя"
// @Success 200 {object} entitlement.RegisterResult
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Error("failed to register user", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("register processed", slog.Bool("inserted", res.Inserted))
	render.JSON(w, r, res)
}
