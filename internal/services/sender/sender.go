// Package sender отправляет квитанции об активации премиум-доступа.
package sender

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/lesson-hub/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-hub/internal/lib/smtp"
	"github.com/magabrotheeeer/lesson-hub/internal/models"
)

// ErrEmptyRecipient в событии нет адреса получателя.
var ErrEmptyRecipient = errors.New("payment event has no email")

// Transport источник SMTP-сессий.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// Service сервис отправки писем.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport Transport) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendPaymentReceipt разбирает событие PaymentRecorded и отправляет квитанцию.
func (s *Service) SendPaymentReceipt(body []byte) error {
	const op = "services.sender.SendPaymentReceipt"
	log := s.log.With(sl.Op(op))

	var event models.PaymentRecorded
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if event.Email == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyRecipient)
	}

	subject := "Премиум-доступ активирован"
	bodyText := fmt.Sprintf("Здравствуйте!\n\nОплата %.2f %s получена (транзакция %s).\n"+
		"Премиум-уроки уже доступны в вашем аккаунте.",
		event.Amount, strings.ToUpper(event.Currency), event.TransactionID)

	if err := s.sendEmail([]string{event.Email}, subject, bodyText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("receipt sent", slog.String("transaction_id", event.TransactionID))
	return nil
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return err
	}
	if err = wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}
