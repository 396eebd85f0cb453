// Package sender собирает сервис уведомлений: читает события о записанных оплатах
// из RabbitMQ и отправляет квитанции по SMTP.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lesson-hub/internal/config"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/lesson-hub/internal/services/sender"
)

// App приложение отправки квитанций.
type App struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	receipts *senderservice.Service
	queue    string
	logger   *slog.Logger
}

// New подключается к брокеру и объявляет очереди оплат.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.sender.New"

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ExchangePayments, rabbitmq.GetPaymentQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		conn:     conn,
		ch:       ch,
		receipts: senderservice.New(logger, smtp.NewTransport(cfg.SMTP, logger)),
		queue:    rabbitmq.QueuePaymentRecorded,
		logger:   logger.With(slog.String("queue", rabbitmq.QueuePaymentRecorded)),
	}, nil
}

// Run обрабатывает сообщения до отмены ctx, дожидается начатых отправок
// и только после этого закрывает канал и соединение.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	consumer, err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, a.queue, a.receipts.SendPaymentReceipt)
	if err != nil {
		return fmt.Errorf("app.sender.Run: %w", err)
	}
	a.logger.Info("sender is consuming")

	<-ctx.Done()
	a.logger.Info("shutting down sender, waiting for in-flight receipts")
	consumer.Wait()
	return nil
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Warn("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Warn("failed to close connection", sl.Err(err))
	}
}
