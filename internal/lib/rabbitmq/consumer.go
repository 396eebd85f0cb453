package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
)

const maxInFlight = 10

// Consumer читает очередь в фоне. Wait возвращается, когда чтение остановлено
// и все начатые обработчики ответили брокеру.
type Consumer struct {
	done chan struct{}
}

// Wait блокируется до остановки Consumer. Канал можно закрывать только после Wait.
func (c *Consumer) Wait() {
	<-c.done
}

// ConsumerMessage запускает чтение очереди и обработку сообщений handler.
// Успешно обработанное сообщение подтверждается, неуспешное возвращается в очередь
// один раз: повторная неудача отбрасывает сообщение.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler func([]byte) error) (*Consumer, error) {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return consume(ctx, log.With(slog.String("queue", queueName)), delivery, handler), nil
}

func consume(ctx context.Context, log *slog.Logger, delivery <-chan amqp.Delivery, handler func([]byte) error) *Consumer {
	c := &Consumer{done: make(chan struct{})}
	sem := make(chan struct{}, maxInFlight)

	go func() {
		var inFlight sync.WaitGroup
		defer close(c.done)
		defer inFlight.Wait()

		for {
			var d amqp.Delivery
			var ok bool
			select {
			case d, ok = <-delivery:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				// Неподтвержденное сообщение брокер вернет в очередь при закрытии канала.
				return
			}
			inFlight.Add(1)
			go func() {
				defer inFlight.Done()
				defer func() { <-sem }()
				handle(log, d, handler)
			}()
		}
	}()
	return c
}

func handle(log *slog.Logger, d amqp.Delivery, handler func([]byte) error) {
	if err := handler(d.Body); err != nil {
		log.Error("failed to handle message", sl.Err(err), slog.Bool("redelivered", d.Redelivered))
		if nackErr := d.Nack(false, !d.Redelivered); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
