// Package paymentprovider адаптер к Stripe Checkout: создание сессии, чтение ее состояния
// и разбор вебхуков о завершении оплаты.
package paymentprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/magabrotheeeer/lesson-hub/internal/config"
)

// Client клиент Stripe Checkout.
type Client struct {
	sc            *client.API
	siteDomain    string
	webhookSecret string
	timeout       time.Duration
}

// NewClient создает клиент с боевыми адресами Stripe.
func NewClient(cfg config.Payment) *Client {
	return NewClientWithBackend(cfg, nil)
}

// NewClientWithBackend создает клиент поверх заданного бэкенда Stripe.
// nil означает бэкенд по умолчанию.
func NewClientWithBackend(cfg config.Payment, backend stripe.Backend) *Client {
	var backends *stripe.Backends
	if backend != nil {
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}
	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		sc:            client.New(cfg.StripeSecret, backends),
		siteDomain:    cfg.SiteDomain,
		webhookSecret: cfg.WebhookSecret,
		timeout:       timeout,
	}
}

// CreateCheckoutSession создает разовую сессию оплаты премиум-доступа.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	const op = "paymentprovider.CreateCheckoutSession"
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Premium Subscription for " + p.Email),
					},
					UnitAmount: stripe.Int64(p.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(p.Email),
		SuccessURL:    stripe.String(c.siteDomain + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(c.siteDomain + "/payment/cancel"),
	}
	params.AddMetadata("email", p.Email)
	params.Context = ctx

	s, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// RetrieveSession читает состояние сессии у провайдера.
// Неизвестная провайдеру сессия возвращается как ErrSessionNotFound.
func (c *Client) RetrieveSession(ctx context.Context, id string) (*Session, error) {
	const op = "paymentprovider.RetrieveSession"
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := c.sc.CheckoutSessions.Get(id, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && (se.HTTPStatusCode == http.StatusNotFound || se.Code == stripe.ErrorCodeResourceMissing) {
			return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sessionFromStripe(s), nil
}

// ParseWebhook проверяет подпись вебхука и возвращает ID завершенной сессии оплаты.
func (c *Client) ParseWebhook(payload []byte, signature string) (string, error) {
	const op = "paymentprovider.ParseWebhook"
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, ErrInvalidSignature, err)
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return "", fmt.Errorf("%s: %w: %s", op, ErrUnsupportedEvent, event.Type)
	}
	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if s.ID == "" {
		return "", fmt.Errorf("%s: %w: empty session id", op, ErrUnsupportedEvent)
	}
	return s.ID, nil
}

func sessionFromStripe(s *stripe.CheckoutSession) *Session {
	out := &Session{
		ID:            s.ID,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		PaymentStatus: string(s.PaymentStatus),
		MetadataEmail: s.Metadata["email"],
		CustomerEmail: s.CustomerEmail,
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out
}
