package lessonhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/lesson-hub/internal/config"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/health"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/lesson/create"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/lesson/listmine"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/lesson/listpublic"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/lesson/read"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/lesson/remove"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/lesson/update"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/payment/checkoutcreate"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/payment/paymentverify"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/users/register"
	"github.com/magabrotheeeer/lesson-hub/internal/http/handlers/users/role"
	"github.com/magabrotheeeer/lesson-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/metrics"
	"github.com/magabrotheeeer/lesson-hub/internal/services/checkout"
	"github.com/magabrotheeeer/lesson-hub/internal/services/entitlement"
	"github.com/magabrotheeeer/lesson-hub/internal/services/lesson"
	"github.com/magabrotheeeer/lesson-hub/internal/services/reconciler"

	// Документация Swagger, сгенерированная swag.
	_ "github.com/magabrotheeeer/lesson-hub/docs"
)

// Services зависимости HTTP-слоя.
type Services struct {
	Checkout    *checkout.Service
	Reconciler  *reconciler.Service
	Entitlement *entitlement.Service
	Lessons     *lesson.Service
	Webhook     paymentwebhook.Parser
	Tokens      middlewarectx.TokenParser
	Health      health.Pinger
	Metrics     *metrics.Metrics
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	healthHandler := health.New(logger, svc.Health, cfg.StorageTimeout)
	r.Get("/", healthHandler.Banner)
	r.Get("/health", healthHandler.ServeHTTP)

	// Оплата
	r.Post("/checkout-session", checkoutcreate.New(logger, svc.Checkout).ServeHTTP)
	r.With(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit)).
		Patch("/verify-success-payment", paymentverify.New(logger, svc.Reconciler).ServeHTTP)
	r.Post("/payments/webhook", paymentwebhook.New(logger, svc.Webhook, svc.Reconciler).ServeHTTP)
	r.Get("/payment", paymentlist.New(logger, svc.Reconciler).ServeHTTP)

	// Пользователи
	r.Post("/users", register.New(logger, svc.Entitlement).ServeHTTP)
	r.Get("/users/role/{email}", role.New(logger, svc.Entitlement).ServeHTTP)

	// Открытые уроки
	r.Get("/public-lessons", listpublic.New(logger, svc.Lessons).ServeHTTP)
	r.Get("/lesson/{id}", read.New(logger, svc.Lessons).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(svc.Tokens, logger))
		r.Post("/lessons", create.New(logger, svc.Lessons).ServeHTTP)
		r.Patch("/lessons/{id}", update.New(logger, svc.Lessons).ServeHTTP)
		r.Delete("/lessons/{id}", remove.New(logger, svc.Lessons).ServeHTTP)
		r.Get("/my-lessons", listmine.New(logger, svc.Lessons).ServeHTTP)
	})

	r.Handle("/metrics", svc.Metrics.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
