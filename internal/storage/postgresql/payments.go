package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

// FindPaymentByTransactionID возвращает запись об оплате по идентификатору транзакции
// провайдера или storage.ErrNotFound.
func (s *Storage) FindPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	const op = "storage.FindPaymentByTransactionID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, amount, currency, payment_status, transaction_id, created_at
			  FROM payments
			  WHERE transaction_id = $1`
	p := &models.Payment{}
	if err := s.DB.QueryRowContext(ctx, query, transactionID).Scan(&p.ID, &p.Email, &p.Amount,
		&p.Currency, &p.PaymentStatus, &p.TransactionID, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// InsertPayment записывает оплату. Уникальность transaction_id обеспечивает база:
// повторная вставка того же идентификатора возвращает storage.ErrPaymentExists.
func (s *Storage) InsertPayment(ctx context.Context, payment models.Payment) (string, error) {
	const op = "storage.InsertPayment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (email, amount, currency, payment_status, transaction_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		payment.Email, payment.Amount, payment.Currency, payment.PaymentStatus,
		payment.TransactionID, payment.CreatedAt).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, storage.ErrPaymentExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает оплаты пользователя, новые первыми. Пустой email — все оплаты.
func (s *Storage) ListPayments(ctx context.Context, email string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, amount, currency, payment_status, transaction_id, created_at
			  FROM payments
			  WHERE ($1::text = '' OR email = $1)
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Email, &p.Amount, &p.Currency,
			&p.PaymentStatus, &p.TransactionID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
