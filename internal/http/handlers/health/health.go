// Package health содержит обработчики приветственной страницы и проверки состояния сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-hub/internal/http/response"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
)

// Banner текст, который отдает GET /.
const Banner = "Digital life lesson are running!"

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает запросы проверки состояния.
type Handler struct {
	log     *slog.Logger
	storage Pinger
	timeout time.Duration
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, storage Pinger, timeout time.Duration) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
		timeout: timeout,
	}
}

// Banner godoc
// @Summary Приветствие
// @Tags Health
// @Produce  plain
// @Success 200 {string} string
// @Router / [get]
func (h *Handler) Banner(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, Banner)
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		h.log.Error("storage ping failed", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("storage unavailable"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
