// Package paymentwebhook принимает уведомления Stripe о завершенных сессиях оплаты
// и проводит их через ту же сверку, что и проверка после возврата пользователя.
package paymentwebhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/paymentprovider"
	"github.com/magabrotheeeer/lesson-hub/internal/services/reconciler"
)

const maxBodyBytes = 64 << 10

// Parser проверяет подпись уведомления.
type Parser interface {
	ParseWebhook(payload []byte, signature string) (string, error)
}

// Service определяет интерфейс сверки оплаты.
type Service interface {
	Verify(ctx context.Context, sessionID string) (*reconciler.Result, error)
}

// Handler обрабатывает уведомления платежного провайдера.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	parser  Parser
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, parser Parser, service Service) *Handler {
	return &Handler{
		log:     log,
		parser:  parser,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вебхук Stripe
// @Description Принимает checkout.session.completed и записывает оплату. Повторная доставка безопасна
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param Stripe-Signature header string true "Подпись Stripe"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.ErrorResponse "Неверная подпись"
// @Failure 503 {object} response.ErrorResponse "Временная ошибка, Stripe повторит доставку"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	defer r.Body.Close()

	sessionID, err := h.parser.ParseWebhook(body, r.Header.Get("Stripe-Signature"))
	switch {
	case errors.Is(err, paymentprovider.ErrUnsupportedEvent):
		log.Info("ignored webhook event", sl.Err(err))
		render.JSON(w, r, map[string]bool{"received": true})
		return
	case err != nil:
		log.Warn("invalid webhook", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid webhook signature"))
		return
	}

	res, err := h.service.Verify(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to reconcile webhook session", slog.String("session_id", sessionID), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("webhook processed",
		slog.String("session_id", sessionID),
		slog.Bool("settled", res.Settled),
		slog.Bool("already_recorded", res.AlreadyRecorded),
	)
	render.JSON(w, r, map[string]bool{"received": true})
}
