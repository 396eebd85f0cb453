// Package mongodb реализует хранилище пользователей, оплат и уроков поверх MongoDB.
// Набор методов совпадает с пакетом postgresql, драйвер выбирается конфигом.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	colUsers    = "users"
	colPayments = "payments"
	colLessons  = "public_lesson"
)

const (
	connectAttempts = 3
	retryInterval   = time.Second
)

// ErrFailedToConnect не удалось подключиться к серверу за отведенные попытки.
var ErrFailedToConnect = errors.New("failed to connect to mongo")

// Storage структура для хранения клиента и базы MongoDB
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB, проверяет соединение и создает уникальные индексы.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	const op = "storage.mongodb.New"

	var client *mongo.Client
	for range connectAttempts {
		c, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(5 * time.Second))
		if err == nil {
			if err = c.Ping(ctx, nil); err == nil {
				client = c
				break
			}
			_ = c.Disconnect(ctx)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
	if client == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrFailedToConnect)
	}

	s := &Storage{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// ensureIndexes создает индексы, на которых держится идемпотентность записи оплат и регистрации.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colPayments: {
			{Keys: bson.D{{Key: "transactionId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		colLessons: {
			{Keys: bson.D{{Key: "visibility", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "creatorEmail", Value: 1}}},
		},
	}
	for col, models := range indexes {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping проверяет доступность сервера.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close закрывает соединение с сервером.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
