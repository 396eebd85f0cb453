// Package rabbitmq содержит подключение к RabbitMQ, объявление топологии,
// публикацию и потребление событий об оплатах.
package rabbitmq

// ExchangePayments обменник событий об оплатах.
const ExchangePayments = "payments"

// Очередь и ключ маршрутизации события о записанной оплате.
const (
	QueuePaymentRecorded      = "payments.recorded"
	RoutingKeyPaymentRecorded = "recorded"
)

// QueueConfig очередь и ключ, которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetPaymentQueues возвращает очереди, которые слушает отправитель квитанций.
func GetPaymentQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueuePaymentRecorded, RoutingKey: RoutingKeyPaymentRecorded},
	}
}
