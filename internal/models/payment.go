package models

import "time"

// PaymentStatusPaid единственный статус оплаты, который сохраняется в журнале.
const PaymentStatusPaid = "paid"

// Payment запись журнала оплат. Создается один раз на идентификатор транзакции провайдера
// и больше не изменяется.
type Payment struct {
	ID            string    `json:"_id,omitempty"`
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"` // Сумма в основных единицах валюты
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId"` // Ключ идемпотентности
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentRecorded событие, которое публикуется после первой записи оплаты.
type PaymentRecorded struct {
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transactionId"`
	RecordedAt    time.Time `json:"recordedAt"`
}

// CheckoutRequest тело запроса POST /checkout-session.
// Cost принимается и строкой, и числом, как это делают клиенты.
type CheckoutRequest struct {
	Email string `json:"email" validate:"required,email"`
	Cost  any    `json:"cost,omitempty"`
}
