// Package reconciler сверяет оплаченные сессии провайдера с журналом оплат и уровнем доступа.
//
// Идентификатор транзакции провайдера единственный ключ идемпотентности: запись в журнал
// уникальна по нему, а повторная проверка уже записанной оплаты не создает новых записей,
// но всегда заново подтверждает уровень Premium у плательщика. Поэтому сбой между записью
// оплаты и выдачей доступа исправляется следующим вызовом с тем же ID сессии.
package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/metrics"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/paymentprovider"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

// Provider источник состояния сессий оплаты.
type Provider interface {
	RetrieveSession(ctx context.Context, id string) (*paymentprovider.Session, error)
}

// Ledger журнал оплат.
type Ledger interface {
	FindPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	InsertPayment(ctx context.Context, payment models.Payment) (string, error)
	ListPayments(ctx context.Context, email string) ([]*models.Payment, error)
}

// Entitlements хранилище уровней доступа.
type Entitlements interface {
	SetUserTier(ctx context.Context, email string, tier models.Tier) (bool, error)
}

// Publisher получатель событий о новых оплатах.
type Publisher interface {
	PublishPaymentRecorded(ctx context.Context, event models.PaymentRecorded) error
}

// Metrics счетчики исходов проверки.
type Metrics interface {
	Verification(outcome string)
	TierRepaired()
	EventPublished(ok bool)
}

// Deps зависимости Service.
type Deps struct {
	Provider       Provider
	Ledger         Ledger
	Entitlements   Entitlements
	Publisher      Publisher // Может быть nil
	Metrics        Metrics
	Log            *slog.Logger
	StorageTimeout time.Duration
	Currency       string // Валюта, если провайдер ее не вернул
}

// Result результат проверки. Settled=false означает, что оплата еще не завершена.
type Result struct {
	Settled         bool
	AlreadyRecorded bool
	TransactionID   string
	Amount          float64
	Currency        string
	Email           string
	Payment         *models.Payment
}

// Service сверка оплат.
type Service struct {
	provider       Provider
	ledger         Ledger
	entitlements   Entitlements
	publisher      Publisher
	metrics        Metrics
	log            *slog.Logger
	storageTimeout time.Duration
	currency       string
	now            func() time.Time
}

// New создает новый экземпляр Service.
func New(d Deps) *Service {
	timeout := d.StorageTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		provider:       d.Provider,
		ledger:         d.Ledger,
		entitlements:   d.Entitlements,
		publisher:      d.Publisher,
		metrics:        d.Metrics,
		log:            d.Log,
		storageTimeout: timeout,
		currency:       d.Currency,
		now:            time.Now,
	}
}

// Verify проверяет сессию оплаты и, если она оплачена, записывает оплату и выдает Premium.
// Вызов безопасно повторять любое число раз, в том числе конкурентно.
func (s *Service) Verify(ctx context.Context, sessionID string) (*Result, error) {
	const op = "services.reconciler.Verify"
	log := s.log.With(sl.Op(op), slog.String("session_id", sessionID))

	if strings.TrimSpace(sessionID) == "" {
		s.metrics.Verification(metrics.OutcomeRejected)
		return nil, apperr.New(apperr.BadRequest, "session_id missing")
	}

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, paymentprovider.ErrSessionNotFound) {
			s.metrics.Verification(metrics.OutcomeRejected)
			return nil, apperr.Wrap(apperr.BadRequest, "unknown checkout session", err)
		}
		s.metrics.Verification(metrics.OutcomeFailed)
		log.Error("failed to retrieve session", sl.Err(err))
		return nil, apperr.UnavailableErr("payment provider unavailable", err)
	}

	if !session.Paid {
		s.metrics.Verification(metrics.OutcomeNotPaid)
		log.Info("session is not paid yet", slog.String("payment_status", session.PaymentStatus))
		return &Result{Settled: false}, nil
	}

	payment, err := s.paymentFromSession(session)
	if err != nil {
		s.metrics.Verification(metrics.OutcomeRejected)
		log.Warn("paid session cannot be recorded", sl.Err(err))
		return nil, err
	}
	log = log.With(slog.String("transaction_id", payment.TransactionID))

	existing, err := s.findPayment(ctx, payment.TransactionID)
	switch {
	case err == nil:
		return s.confirmRecorded(ctx, log, existing, true)
	case !errors.Is(err, storage.ErrNotFound):
		s.metrics.Verification(metrics.OutcomeFailed)
		log.Error("failed to look up payment", sl.Err(err))
		return nil, apperr.UnavailableErr("payment ledger unavailable", err)
	}

	id, err := s.insertPayment(ctx, payment)
	if errors.Is(err, storage.ErrPaymentExists) {
		// Конкурентный вызов записал оплату раньше: ведем себя как при повторной проверке.
		log.Info("payment recorded concurrently")
		existing, findErr := s.findPayment(ctx, payment.TransactionID)
		if findErr != nil {
			existing = &payment
		}
		// Событие публикует записавший вызов.
		return s.confirmRecorded(ctx, log, existing, false)
	}
	if err != nil {
		s.metrics.Verification(metrics.OutcomeFailed)
		log.Error("failed to insert payment", sl.Err(err))
		return nil, apperr.UnavailableErr("payment ledger unavailable", err)
	}
	payment.ID = id

	if _, err := s.grantPremium(ctx, payment.Email); err != nil {
		// Оплата уже в журнале. Следующая проверка этой сессии повторит выдачу доступа.
		s.metrics.Verification(metrics.OutcomeFailed)
		log.Error("payment recorded but premium grant failed", sl.Err(err))
		return nil, apperr.UnavailableErr("failed to activate premium access, retry verification", err)
	}

	s.metrics.Verification(metrics.OutcomeRecorded)
	log.Info("payment recorded", slog.String("email", payment.Email), slog.Float64("amount", payment.Amount))
	s.publish(ctx, log, payment)

	return &Result{
		Settled:         true,
		AlreadyRecorded: false,
		TransactionID:   payment.TransactionID,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		Email:           payment.Email,
		Payment:         &payment,
	}, nil
}

// History возвращает оплаты, новые первыми. Пустой email означает все оплаты.
func (s *Service) History(ctx context.Context, email string) ([]*models.Payment, error) {
	const op = "services.reconciler.History"

	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()

	payments, err := s.ledger.ListPayments(ctx, email)
	if err != nil {
		s.log.Error("failed to list payments", sl.Op(op), sl.Err(err))
		return nil, apperr.UnavailableErr("failed to get payments", err)
	}
	return payments, nil
}

// confirmRecorded завершает проверку уже записанной оплаты: доступ выдается заново,
// если после записи оплаты он так и не был выдан. При republish вместе с такой
// починкой публикуется квитанция, которую записавший вызов не успел отправить.
func (s *Service) confirmRecorded(ctx context.Context, log *slog.Logger, p *models.Payment, republish bool) (*Result, error) {
	changed, err := s.grantPremium(ctx, p.Email)
	if err != nil {
		s.metrics.Verification(metrics.OutcomeFailed)
		log.Error("failed to confirm premium for recorded payment", sl.Err(err))
		return nil, apperr.UnavailableErr("failed to activate premium access, retry verification", err)
	}
	if changed {
		s.metrics.TierRepaired()
		log.Warn("premium access repaired for recorded payment", slog.String("email", p.Email))
		if republish {
			s.publish(ctx, log, *p)
		}
	}
	s.metrics.Verification(metrics.OutcomeAlreadyRecorded)

	return &Result{
		Settled:         true,
		AlreadyRecorded: true,
		TransactionID:   p.TransactionID,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Email:           p.Email,
		Payment:         p,
	}, nil
}

// paymentFromSession собирает запись журнала из оплаченной сессии.
// Email из метаданных сессии приоритетнее email покупателя.
func (s *Service) paymentFromSession(session *paymentprovider.Session) (models.Payment, error) {
	if session.PaymentIntentID == "" {
		return models.Payment{}, apperr.New(apperr.Unavailable, "payment is not settled yet, retry verification")
	}
	email := session.MetadataEmail
	if email == "" {
		email = session.CustomerEmail
	}
	if email == "" {
		return models.Payment{}, apperr.New(apperr.BadRequest, "payment session has no payer email")
	}
	if session.AmountTotal <= 0 {
		return models.Payment{}, apperr.New(apperr.BadRequest, "payment session has no amount")
	}
	currency := strings.ToLower(session.Currency)
	if currency == "" {
		currency = s.currency
	}
	return models.Payment{
		Email:         email,
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      currency,
		PaymentStatus: models.PaymentStatusPaid,
		TransactionID: session.PaymentIntentID,
		CreatedAt:     s.now().UTC(),
	}, nil
}

func (s *Service) findPayment(ctx context.Context, txID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()
	return s.ledger.FindPaymentByTransactionID(ctx, txID)
}

func (s *Service) insertPayment(ctx context.Context, p models.Payment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()
	return s.ledger.InsertPayment(ctx, p)
}

func (s *Service) grantPremium(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storageTimeout)
	defer cancel()
	return s.entitlements.SetUserTier(ctx, email, models.TierPremium)
}

// publish отправляет событие о новой оплате. Ошибка публикации не влияет на результат проверки.
func (s *Service) publish(ctx context.Context, log *slog.Logger, p models.Payment) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storageTimeout)
	defer cancel()

	err := s.publisher.PublishPaymentRecorded(ctx, models.PaymentRecorded{
		Email:         p.Email,
		Amount:        p.Amount,
		Currency:      p.Currency,
		TransactionID: p.TransactionID,
		RecordedAt:    p.CreatedAt,
	})
	s.metrics.EventPublished(err == nil)
	if err != nil {
		log.Warn("failed to publish payment event", sl.Err(err))
	}
}
