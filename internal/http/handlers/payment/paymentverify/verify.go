// Package paymentverify реализует HTTP-обработчик проверки оплаты после возврата со страницы провайдера.
//
// Обработчик можно вызывать сколько угодно раз для одной сессии: повторные вызовы
// возвращают alreadyRecorded=true и не создают новых записей об оплате.
package paymentverify

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/services/reconciler"
)

// Service определяет интерфейс сверки оплаты.
type Service interface {
	Verify(ctx context.Context, sessionID string) (*reconciler.Result, error)
}

// Response тело ответа.
type Response struct {
	Success         bool            `json:"success"`
	AlreadyRecorded bool            `json:"alreadyRecorded,omitempty"`
	TransactionID   string          `json:"transactionId,omitempty"`
	PaymentInfo     *models.Payment `json:"paymentInfo,omitempty"`
}

// Handler обрабатывает запросы на проверку оплаты.
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
// @Summary Проверить оплату
// @Description Сверяет сессию оплаты с провайдером, записывает оплату один раз и выдает Premium
// @Tags Payments
// @Produce  json
// @Param session_id query string true "ID сессии Stripe Checkout"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Нет или неизвестен session_id"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 503 {object} response.ErrorResponse "Провайдер или хранилище недоступны, можно повторить"
// @Router /verify-success-payment [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.verify"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID := r.URL.Query().Get("session_id")
	res, err := h.service.Verify(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to verify payment", slog.String("session_id", sessionID), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("payment verified",
		slog.String("session_id", sessionID),
		slog.Bool("settled", res.Settled),
		slog.Bool("already_recorded", res.AlreadyRecorded),
	)
	render.JSON(w, r, Response{
		Success:         res.Settled,
		AlreadyRecorded: res.AlreadyRecorded,
		TransactionID:   res.TransactionID,
		PaymentInfo:     res.Payment,
	})
}
