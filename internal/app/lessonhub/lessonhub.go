// Package lessonhub собирает HTTP-сервис уроков: хранилище, кэш, платежного провайдера,
// брокер событий и сервисы бизнес-логики.
package lessonhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lesson-hub/internal/cache"
	"github.com/magabrotheeeer/lesson-hub/internal/config"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/metrics"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/paymentprovider"
	"github.com/magabrotheeeer/lesson-hub/internal/services/access"
	"github.com/magabrotheeeer/lesson-hub/internal/services/checkout"
	"github.com/magabrotheeeer/lesson-hub/internal/services/entitlement"
	"github.com/magabrotheeeer/lesson-hub/internal/services/lesson"
	"github.com/magabrotheeeer/lesson-hub/internal/services/reconciler"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-приложение со всеми зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	store     Store
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New подключает инфраструктуру и собирает маршруты. Redis и RabbitMQ необязательны:
// без адреса Redis уроки читаются напрямую из хранилища, без RabbitMQ события не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	app := &App{logger: logger, store: store}

	var lessonCache lesson.Cache
	if cfg.AddressRedis != "" {
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close(ctx)
			return nil, err
		}
		app.cache = c
		lessonCache = c
	} else {
		logger.Warn("redis address is not set, lesson cache disabled")
	}

	var publisher reconciler.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			app.close(ctx)
			return nil, err
		}
		app.amqpConn = conn
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ExchangePayments, rabbitmq.GetPaymentQueues())
		if err != nil {
			app.close(ctx)
			return nil, err
		}
		app.publisher = rabbitmq.NewPublisher(ch)
		publisher = app.publisher
	} else {
		logger.Warn("rabbitmq url is not set, payment events will not be published")
	}

	m := metrics.New()
	provider := paymentprovider.NewClient(cfg.Payment)
	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	gate := access.New(store, logger, cfg.StorageTimeout)

	svc := Services{
		Checkout: checkout.New(provider, m, logger, cfg.Currency, cfg.DefaultCost),
		Reconciler: reconciler.New(reconciler.Deps{
			Provider:       provider,
			Ledger:         store,
			Entitlements:   store,
			Publisher:      publisher,
			Metrics:        m,
			Log:            logger,
			StorageTimeout: cfg.StorageTimeout,
			Currency:       cfg.Currency,
		}),
		Entitlement: entitlement.New(store, logger, cfg.StorageTimeout),
		Lessons:     lesson.New(store, lessonCache, gate, logger, cfg.StorageTimeout),
		Webhook:     provider,
		Tokens:      tokens,
		Health:      store,
		Metrics:     m,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, svc)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close(context.Background())
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close(timeoutCtx)
		return err
	}
}

func (a *App) close(ctx context.Context) {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.store.Close(ctx); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
