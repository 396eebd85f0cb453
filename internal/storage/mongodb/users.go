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

type userDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Name      string        `bson:"name"`
	Image     string        `bson:"image"`
	Role      string        `bson:"role"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d userDoc) toModel() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Image:     d.Image,
		Role:      models.Tier(d.Role),
		CreatedAt: d.CreatedAt,
	}
}

// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var doc userDoc
	if err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toModel(), nil
}

// InsertUserIfAbsent сохраняет нового пользователя и возвращает его ID.
// Занятый email дает storage.ErrUserExists, существующая запись не меняется.
func (s *Storage) InsertUserIfAbsent(ctx context.Context, user models.User) (string, error) {
	const op = "storage.InsertUserIfAbsent"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	doc := userDoc{
		ID:        bson.NewObjectID(),
		Email:     user.Email,
		Name:      user.Name,
		Image:     user.Image,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	if _, err := s.db.Collection(colUsers).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return doc.ID.Hex(), nil
}

// SetUserTier устанавливает уровень доступа, создавая пользователя при отсутствии.
// Возвращает true, если сохраненное значение изменилось.
func (s *Storage) SetUserTier(ctx context.Context, email string, tier models.Tier) (bool, error) {
	const op = "storage.SetUserTier"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	filter := bson.M{"email": email, "role": bson.M{"$ne": string(tier)}}
	update := bson.M{
		"$set":         bson.M{"role": string(tier)},
		"$setOnInsert": bson.M{"name": "", "image": "", "createdAt": time.Now().UTC()},
	}
	res, err := s.db.Collection(colUsers).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		// Пользователь уже имеет этот уровень: фильтр не совпал, а вставка уперлась в индекс email.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.ModifiedCount > 0 || res.UpsertedCount > 0, nil
}
