// Package checkout создает у платежного провайдера сессии оплаты премиум-доступа.
// Локально ничего не сохраняется: email плательщика уходит в метаданные сессии,
// и по нему оплата потом сопоставляется с пользователем.
package checkout

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/paymentprovider"
)

// Provider платежный провайдер.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, p paymentprovider.CheckoutParams) (*paymentprovider.CheckoutSession, error)
}

// Metrics счетчик созданных сессий.
type Metrics interface {
	Checkout(ok bool)
}

// Service сервис создания сессий оплаты.
type Service struct {
	provider    Provider
	metrics     Metrics
	log         *slog.Logger
	currency    string
	defaultCost int64
	validate    *validator.Validate
}

// New создает новый экземпляр Service.
func New(provider Provider, metrics Metrics, log *slog.Logger, currency string, defaultCost int64) *Service {
	return &Service{
		provider:    provider,
		metrics:     metrics,
		log:         log,
		currency:    currency,
		defaultCost: defaultCost,
		validate:    validator.New(),
	}
}

// CreateSession создает сессию оплаты для email и возвращает адрес перенаправления.
// cost в основных единицах валюты, отсутствующая или неположительная цена заменяется ценой по умолчанию.
func (s *Service) CreateSession(ctx context.Context, email string, cost any) (string, error) {
	const op = "services.checkout.CreateSession"
	log := s.log.With(sl.Op(op))

	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", apperr.New(apperr.BadRequest, "a valid email is required")
	}

	amount := CoerceCost(cost, s.defaultCost)
	session, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CheckoutParams{
		Email:      email,
		UnitAmount: amount * 100,
		Currency:   s.currency,
	})
	if err != nil {
		s.metrics.Checkout(false)
		log.Error("failed to create checkout session", sl.Err(err))
		return "", apperr.UnavailableErr("payment provider unavailable", err)
	}
	s.metrics.Checkout(true)
	log.Info("checkout session created", slog.String("session_id", session.ID), slog.Int64("cost", amount))
	return session.URL, nil
}

// CoerceCost приводит цену из запроса к целому числу основных единиц.
// Принимаются числа и строки, дробная часть отбрасывается.
func CoerceCost(cost any, def int64) int64 {
	var v float64
	switch c := cost.(type) {
	case float64:
		v = c
	case float32:
		v = float64(c)
	case int:
		v = float64(c)
	case int64:
		v = float64(c)
	case json.Number:
		f, err := c.Float64()
		if err != nil {
			return def
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return def
		}
		v = f
	default:
		return def
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v > math.MaxInt64/100 {
		return def
	}
	n := int64(v)
	if n <= 0 {
		return def
	}
	return n
}
