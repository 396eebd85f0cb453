// Package checkoutcreate реализует HTTP-обработчик создания сессии оплаты Premium-доступа.
//
// Handler принимает email и цену, передает их сервису оформления оплаты
// и возвращает адрес страницы оплаты провайдера.
package checkoutcreate

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
)

// Service определяет интерфейс оформления оплаты.
type Service interface {
	CreateSession(ctx context.Context, email string, cost any) (string, error)
}

// Response тело успешного ответа.
type Response struct {
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_123"`
}

// Handler обрабатывает запросы на создание сессии оплаты.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис оформления оплаты
	validate *validator.Validate // Валидатор структуры входящих данных
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
// @Summary Создать сессию оплаты
// @Description Создает сессию Stripe Checkout для покупки Premium-доступа и возвращает адрес перенаправления
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.CheckoutRequest true "Email плательщика и цена"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 503 {object} response.ErrorResponse "Платежный провайдер недоступен"
// @Router /checkout-session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkoutcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CheckoutRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
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

	url, err := h.service.CreateSession(r.Context(), req.Email, req.Cost)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	render.JSON(w, r, Response{URL: url})
}
