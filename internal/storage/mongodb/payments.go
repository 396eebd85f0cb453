package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/magabrotheeeer/lesson-hub/internal/models"
	"github.com/magabrotheeeer/lesson-hub/internal/storage"
)

type paymentDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Email         string        `bson:"email"`
	Amount        float64       `bson:"amount"`
	Currency      string        `bson:"currency"`
	PaymentStatus string        `bson:"paymentStatus"`
	TransactionID string        `bson:"transactionId"`
	CreatedAt     time.Time     `bson:"createdAt"`
}

func (d paymentDoc) toModel() *models.Payment {
	return &models.Payment{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		Amount:        d.Amount,
		Currency:      d.Currency,
		PaymentStatus: d.PaymentStatus,
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
	}
}

// FindPaymentByTransactionID ищет оплату по идентификатору транзакции провайдера.
func (s *Storage) FindPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	const op = "storage.FindPaymentByTransactionID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var doc paymentDoc
	err := s.db.Collection(colPayments).FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toModel(), nil
}

// InsertPayment записывает оплату. Повтор идентификатора транзакции отклоняется
// уникальным индексом и возвращается как storage.ErrPaymentExists.
func (s *Storage) InsertPayment(ctx context.Context, payment models.Payment) (string, error) {
	const op = "storage.InsertPayment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	doc := paymentDoc{
		ID:            bson.NewObjectID(),
		Email:         payment.Email,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		PaymentStatus: payment.PaymentStatus,
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
	}
	if _, err := s.db.Collection(colPayments).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrPaymentExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return doc.ID.Hex(), nil
}

// ListPayments возвращает оплаты, новые первыми. Пустой email означает все оплаты.
func (s *Storage) ListPayments(ctx context.Context, email string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.db.Collection(colPayments).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var docs []paymentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.Payment, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toModel())
	}
	return result, nil
}
