package paymentprovider

import "errors"

var (
	// ErrSessionNotFound провайдер не знает сессию с таким ID.
	ErrSessionNotFound = errors.New("checkout session not found")
	// ErrUnsupportedEvent событие вебхука не относится к завершению оплаты.
	ErrUnsupportedEvent = errors.New("unsupported webhook event")
	// ErrInvalidSignature подпись вебхука не прошла проверку.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// CheckoutParams параметры новой сессии оплаты.
type CheckoutParams struct {
	Email      string
	UnitAmount int64 // В минимальных единицах валюты
	Currency   string
}

// CheckoutSession созданная сессия оплаты.
type CheckoutSession struct {
	ID  string
	URL string
}

// Session состояние сессии оплаты у провайдера.
type Session struct {
	ID              string
	Paid            bool
	PaymentStatus   string
	MetadataEmail   string
	CustomerEmail   string
	AmountTotal     int64 // В минимальных единицах валюты
	Currency        string
	PaymentIntentID string
}
