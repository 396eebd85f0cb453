// Package paymentlist реализует HTTP-обработчик истории оплат.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

// Service определяет интерфейс чтения журнала оплат.
type Service interface {
	History(ctx context.Context, email string) ([]*models.Payment, error)
}

// Handler обрабатывает запросы на получение истории оплат.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
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
// @Summary История оплат
// @Description Возвращает оплаты, новые первыми. Без email возвращает весь журнал
// @Tags Payments
// @Produce  json
// @Param email query string false "Email плательщика"
// @Success 200 {array} models.Payment
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /payment [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payments, err := h.service.History(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	if payments == nil {
		payments = []*models.Payment{}
	}

	log.Info("list payments", slog.Int("count", len(payments)))
	render.JSON(w, r, payments)
}
